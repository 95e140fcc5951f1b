package service

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/quizlive/quizlive-backend/internal/model"
	"github.com/quizlive/quizlive-backend/internal/repository"
)

// LeaderboardService exposes the all-time score list and the prize draw.
type LeaderboardService struct {
	repo *repository.LeaderboardRepository
	log  zerolog.Logger
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(repo *repository.LeaderboardRepository, log zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		repo: repo,
		log:  log.With().Str("component", "leaderboard_service").Logger(),
	}
}

// Top returns the best n all-time entries by score.
func (s *LeaderboardService) Top(n int) []model.LeaderboardEntry {
	return s.repo.Top(n)
}

// Reset zeroes every all-time score.
func (s *LeaderboardService) Reset() error {
	return s.repo.ResetScores()
}

// DrawWinners picks numberOfWinners random players from the top 2n of the
// all-time list, so higher-scoring players make the candidate pool but the
// draw itself stays a lottery.
func (s *LeaderboardService) DrawWinners(numberOfWinners int) []model.LeaderboardEntry {
	candidates := s.repo.Top(numberOfWinners * 2)
	winners := make([]model.LeaderboardEntry, 0, numberOfWinners)

	for len(winners) < numberOfWinners && len(candidates) > 0 {
		i := rand.Intn(len(candidates))
		winners = append(winners, candidates[i])
		candidates = append(candidates[:i], candidates[i+1:]...)
	}

	s.log.Info().Int("winners", len(winners)).Msg("Prize draw completed")
	return winners
}
