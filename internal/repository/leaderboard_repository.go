package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/quizlive/quizlive-backend/internal/model"
)

// LeaderboardRepository keeps the all-time player score list in a single
// JSON file, loaded at startup and rewritten on every change.
type LeaderboardRepository struct {
	path string

	mu      sync.Mutex
	entries []*model.LeaderboardEntry
}

// NewLeaderboardRepository loads the existing score list if one is present.
func NewLeaderboardRepository(path string) (*LeaderboardRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create leaderboard dir: %w", err)
		}
	}

	r := &LeaderboardRepository{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read leaderboard file: %w", err)
	}
	if err := json.Unmarshal(data, &r.entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard file: %w", err)
	}
	return r, nil
}

// AddOrUpdate records a player's score under their trimmed name. An existing
// entry with the same name (case-insensitive) is overwritten, matching how
// session results replace earlier ones for returning players.
func (r *LeaderboardRepository) AddOrUpdate(name string, score int) error {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return errors.New("player name must be provided")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for _, e := range r.entries {
		if strings.EqualFold(e.Name, cleaned) {
			e.Score = score
			found = true
			break
		}
	}
	if !found {
		r.entries = append(r.entries, &model.LeaderboardEntry{Name: cleaned, Score: score})
	}
	return r.saveLocked()
}

// Top returns up to n entries ordered by score descending.
func (r *LeaderboardRepository) Top(n int) []model.LeaderboardEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := make([]model.LeaderboardEntry, 0, len(r.entries))
	for _, e := range r.entries {
		sorted = append(sorted, *e)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// ResetScores zeroes every entry and persists the result.
func (r *LeaderboardRepository) ResetScores() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		e.Score = 0
	}
	return r.saveLocked()
}

// saveLocked rewrites the whole file. Caller must hold r.mu.
func (r *LeaderboardRepository) saveLocked() error {
	data, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal leaderboard: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	return nil
}
