package model

import "time"

// UserProfile est l'identité minimale fournie par le fournisseur d'identité.
// Le moteur ne possède pas les utilisateurs : il lit id, nom et avatar pour
// l'authentification des écritures et l'affichage du classement.
type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	JoinDate  time.Time `json:"joinDate,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
