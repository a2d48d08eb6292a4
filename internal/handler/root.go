package handler

import (
	"net/http"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "HabitFlow Progress API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"challenges": []map[string]string{
				{"method": "GET", "path": "/challenges/{id}", "description": "Récupérer un challenge avec ses activités"},
				{"method": "POST", "path": "/challenges/{id}/join", "description": "Rejoindre un challenge (body: startDate, selectedActivityIds)"},
				{"method": "GET", "path": "/challenges/{id}/participant", "description": "Inscription de l'utilisateur courant au challenge"},
				{"method": "GET", "path": "/challenges/{id}/leaderboard", "description": "Classement du challenge (params: filter, sort, limit)"},
			},
			"participants": []map[string]string{
				{"method": "POST", "path": "/participants/{id}/completions", "description": "Logger une activité faite (body: activityId, date, verificationUrl)"},
				{"method": "POST", "path": "/participants/{id}/leave", "description": "Quitter le challenge (body: keepActivities)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour HabitFlow - Progression et classement des challenges d'habitudes",
			"contact":     "support@habitflow.app",
		},
	}

	utils.Success(w, routes)
}
