package service

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quizlive/quizlive-backend/internal/repository"
)

func newTestLeaderboardService(t *testing.T, scores map[string]int) *LeaderboardService {
	t.Helper()
	repo, err := repository.NewLeaderboardRepository(filepath.Join(t.TempDir(), "players.json"))
	if err != nil {
		t.Fatalf("new leaderboard: %v", err)
	}
	for name, score := range scores {
		if err := repo.AddOrUpdate(name, score); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	return NewLeaderboardService(repo, zerolog.Nop())
}

func TestDrawWinnersPicksDistinctPlayersFromTopPool(t *testing.T) {
	svc := newTestLeaderboardService(t, map[string]int{
		"Ana": 500, "Bruno": 400, "Carla": 300, "Dora": 200,
		"Enzo": 100, "Fabi": 50, "Gil": 10,
	})
	pool := map[string]bool{}
	for _, e := range svc.Top(6) {
		pool[e.Name] = true
	}

	// Repeat to cover different random orderings.
	for i := 0; i < 25; i++ {
		winners := svc.DrawWinners(3)
		if len(winners) != 3 {
			t.Fatalf("winners = %d, want 3", len(winners))
		}
		seen := map[string]bool{}
		for _, w := range winners {
			if seen[w.Name] {
				t.Fatalf("player %s drawn twice", w.Name)
			}
			seen[w.Name] = true
			if !pool[w.Name] {
				t.Fatalf("winner %s is outside the top-6 pool", w.Name)
			}
		}
	}
}

func TestDrawWinnersWithSmallField(t *testing.T) {
	svc := newTestLeaderboardService(t, map[string]int{"Ana": 100, "Bruno": 50})
	winners := svc.DrawWinners(5)
	if len(winners) != 2 {
		t.Fatalf("winners = %d, want everyone when the field is short", len(winners))
	}

	empty := newTestLeaderboardService(t, nil)
	if got := empty.DrawWinners(3); len(got) != 0 {
		t.Fatalf("winners from empty list = %d, want 0", len(got))
	}
}
