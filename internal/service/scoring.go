package service

import (
	"strconv"
	"strings"

	"github.com/quizlive/quizlive-backend/internal/model"
)

const (
	maxAnswerPoints  = 150
	penaltyPerSecond = 10
	maxScoredSeconds = 15
)

// EvaluateAnswer scores a submitted answer against a question. It is pure:
// persistence and broadcasting are the caller's job.
//
// The submitted text is compared case-insensitively against the correct
// option index rendered as text. A match earns 150 points minus 10 per
// elapsed second, with elapsed time clamped at 15 seconds. Correctness is
// defined as points > 0, so a match at the 15-second clamp scores 0 and is
// reported as incorrect. That coupling is intentional product behavior.
func EvaluateAnswer(q model.Question, submitted string, elapsedSeconds int) (bool, int) {
	correct := strconv.Itoa(q.CorrectOptionIndex)
	if !strings.EqualFold(submitted, correct) {
		return false, 0
	}

	if elapsedSeconds > maxScoredSeconds {
		elapsedSeconds = maxScoredSeconds
	}
	points := maxAnswerPoints - penaltyPerSecond*elapsedSeconds
	if points < 0 {
		points = 0
	}
	return points > 0, points
}
