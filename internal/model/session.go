package model

import "time"

// AnswerRecord holds one player's scored answer to one question.
// A nil Answer together with a nil AnsweredAt marks a back-filled
// non-response synthesized when the question was closed.
type AnswerRecord struct {
	QuestionIndex int        `json:"question_index"`
	Answer        *string    `json:"answer"`
	IsCorrect     bool       `json:"is_correct"`
	PointsEarned  int        `json:"points_earned"`
	AnsweredAt    *time.Time `json:"answered_at"`
}

// GameSession is the authoritative state of one running game. It is
// persisted as a single JSON document after every mutation.
type GameSession struct {
	ID        string     `json:"id"`
	Pin       string     `json:"pin"`
	Questions []Question `json:"questions"`
	// CurrentQuestionIndex is the zero-based position within Questions.
	CurrentQuestionIndex int `json:"current_question_index"`
	// Players keeps join order; join order decides tie positions in rankings.
	Players []*Player `json:"players"`
	// AnswersByQuestion maps question index -> player id -> record.
	// At most one record exists per (question index, player id); a second
	// submission for the same pair is rejected, never merged.
	AnswersByQuestion map[int]map[string]*AnswerRecord `json:"answers_by_question"`
	// AnswerCountsByQuestion mirrors len(AnswersByQuestion[idx]) as a
	// convenience counter for the admin view.
	AnswerCountsByQuestion map[int]int `json:"answer_counts_by_question"`
	// IsQuestionActive gates whether submissions are accepted.
	IsQuestionActive bool      `json:"is_question_active"`
	CreatedAt        time.Time `json:"created_at"`
	LastUpdatedAt    time.Time `json:"last_updated_at"`
}

// EnsureAnswerMaps creates the answer map and counter entry for a question
// index if they do not exist yet. Existing entries are never replaced.
func (s *GameSession) EnsureAnswerMaps(questionIndex int) {
	if s.AnswersByQuestion == nil {
		s.AnswersByQuestion = make(map[int]map[string]*AnswerRecord)
	}
	if _, ok := s.AnswersByQuestion[questionIndex]; !ok {
		s.AnswersByQuestion[questionIndex] = make(map[string]*AnswerRecord)
	}
	if s.AnswerCountsByQuestion == nil {
		s.AnswerCountsByQuestion = make(map[int]int)
	}
	if _, ok := s.AnswerCountsByQuestion[questionIndex]; !ok {
		s.AnswerCountsByQuestion[questionIndex] = 0
	}
}

// FindPlayer returns the player with the given id, or nil.
func (s *GameSession) FindPlayer(playerID string) *Player {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// AnswerFor returns this player's record for the given question index, or nil.
func (s *GameSession) AnswerFor(questionIndex int, playerID string) *AnswerRecord {
	answers, ok := s.AnswersByQuestion[questionIndex]
	if !ok {
		return nil
	}
	return answers[playerID]
}

// CurrentQuestion returns the question at CurrentQuestionIndex, or false if
// the index is outside the question list.
func (s *GameSession) CurrentQuestion() (Question, bool) {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentQuestionIndex], true
}
