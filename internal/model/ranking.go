package model

// RankingEntry is one row of a session leaderboard. It is derived from the
// player list on demand and never stored.
type RankingEntry struct {
	Pin      string `json:"pin"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	// Position is the 1-based rank. Equal scores receive distinct
	// consecutive positions in join order, not a shared rank.
	Position int `json:"position"`
}

// LeaderboardEntry is one row of the persistent all-time score list,
// keyed by player name across sessions.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
