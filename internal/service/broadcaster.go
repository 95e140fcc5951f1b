package service

import "github.com/quizlive/quizlive-backend/internal/model"

// Broadcaster is the outbound half of the real-time channel. The WebSocket
// hub implements it; tests substitute a recording fake. Session-wide and
// admin-only deliveries are keyed by pin, the same key clients connect with.
//
// Targeted deliveries report whether the player currently resolves to a live
// connection; a false return means the push was dropped, which is fine — a
// reconnecting player re-requests state.
type Broadcaster interface {
	// QuestionPresented goes to the whole session audience.
	QuestionPresented(pin string, question model.QuestionView, index, total int)
	// Loading tells players to show the waiting screen. A nil index means
	// no particular question.
	Loading(pin string, questionIndex *int)
	// AnswerCountUpdated goes to admin viewers only.
	AnswerCountUpdated(pin string, count int)
	// RankingUpdated goes to admin viewers only.
	RankingUpdated(pin string, ranking []model.RankingEntry)
	// QuestionResults goes to admin viewers only.
	QuestionResults(pin string, tally map[int]int, correctIndex int)
	// PodiumRevealed goes to the whole session audience.
	PodiumRevealed(pin string, ranking []model.RankingEntry)
	// AnswerScored goes to one player's connection. A nil isCorrect marks a
	// back-filled non-response.
	AnswerScored(playerID string, isCorrect *bool, points int) bool
	// PlayerScore pushes a player's cumulative score to their connection.
	PlayerScore(playerID string, score int) bool
}
