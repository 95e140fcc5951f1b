package service

import (
	"sort"

	"github.com/quizlive/quizlive-backend/internal/model"
)

// CalculateRanking orders a session's players by score descending and
// assigns 1-based positions. The sort is stable, so players with equal
// scores keep their join order and receive distinct consecutive positions
// rather than a shared rank.
func CalculateRanking(session *model.GameSession) []model.RankingEntry {
	players := make([]*model.Player, len(session.Players))
	copy(players, session.Players)

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})

	ranking := make([]model.RankingEntry, 0, len(players))
	for i, p := range players {
		ranking = append(ranking, model.RankingEntry{
			Pin:      session.Pin,
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
			Position: i + 1,
		})
	}
	return ranking
}
