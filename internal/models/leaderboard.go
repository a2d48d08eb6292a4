package model

// Filtres du classement. circle et friends s'appuient sur des collaborateurs
// externes (graphe d'amis, cercles) ; un ensemble externe vide donne un
// classement vide, pas un retour au filtre "all".
const (
	LeaderboardFilterAll     = "all"
	LeaderboardFilterFriends = "friends"
	LeaderboardFilterCircle  = "circle"
)

// Tris du classement. rank et perfect partagent aujourd'hui le même
// comparateur (pourcentage desc, daysTaken asc) — duplication présente dans
// le produit d'origine, conservée en attendant un arbitrage produit.
const (
	LeaderboardSortRank    = "rank"
	LeaderboardSortFastest = "fastest"
	LeaderboardSortPerfect = "perfect"
)

// LeaderboardEntry est la vue de lecture du classement d'un challenge.
// Dérivée des champs du participant, jamais persistée séparément.
type LeaderboardEntry struct {
	UserID               string  `json:"userId"`
	UserName             string  `json:"userName"`
	Avatar               string  `json:"avatar,omitempty"`
	CompletionPercentage int     `json:"completionPercentage"`
	CompletedDays        int     `json:"completedDays"`
	CurrentDay           int     `json:"currentDay"`
	CurrentStreak        int     `json:"currentStreak"`
	DaysTaken            *int    `json:"daysTaken,omitempty"`
	Rank                 int     `json:"rank"`
	Percentile           float64 `json:"percentile"`
}
