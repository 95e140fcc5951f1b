package model

// Player represents a participant in a game session.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Score is the running sum of PointsEarned over all of this player's
	// answer records. SubmitAnswer is the only code path that adds to it.
	Score      int    `json:"score"`
	AvatarSeed string `json:"avatar_seed"`
	IsActive   bool   `json:"is_active"`
}
