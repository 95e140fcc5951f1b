package websocket

import "github.com/quizlive/quizlive-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	// Admin actions — rejected for clients without the admin role.
	ActionPresentQuestion    Action = "present_question"
	ActionNavigateToQuestion Action = "navigate_to_question"
	ActionEndQuestion        Action = "end_question"
	ActionRequestResults     Action = "request_results"
	ActionRequestRanking     Action = "request_ranking"
	ActionBroadcastRanking   Action = "broadcast_ranking"
	ActionShowLoading        Action = "show_loading"
	ActionRequestAnswerCount Action = "request_answer_count"
	ActionShowPodium         Action = "show_podium"

	// Player actions.
	ActionSubmitAnswer Action = "submit_answer"
	ActionRequestState Action = "request_state"

	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// SubmitAnswerRequest carries a player's timed answer for the open question.
type SubmitAnswerRequest struct {
	Action         Action `json:"action"`
	Answer         string `json:"answer"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

// NavigateRequest moves the session to another question index.
type NavigateRequest struct {
	Action      Action `json:"action"`
	TargetIndex int    `json:"target_index"`
}

// ShowLoadingRequest pushes the waiting screen to players. A nil index
// means "no particular question".
type ShowLoadingRequest struct {
	Action        Action `json:"action"`
	QuestionIndex *int   `json:"question_index"`
}

// AnswerCountRequest asks for the recorded answer count of one question.
type AnswerCountRequest struct {
	Action        Action `json:"action"`
	QuestionIndex int    `json:"question_index"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	// Session audience.
	EventQuestion Event = "question"
	EventLoading  Event = "loading"
	EventPodium   Event = "podium"

	// Admin audience.
	EventAnswerCount     Event = "answer_count"
	EventRanking         Event = "ranking"
	EventQuestionResults Event = "question_results"

	// Single connection.
	EventAnswerScored    Event = "answer_scored"
	EventScore           Event = "score"
	EventCurrentState    Event = "current_state"
	EventSessionNotFound Event = "session_not_found"
	EventError           Event = "error"
	EventPong            Event = "pong"
)

// QuestionEvent delivers the presented question without its answer key.
type QuestionEvent struct {
	Event          Event              `json:"event"`
	Question       model.QuestionView `json:"question"`
	QuestionIndex  int                `json:"question_index"`
	TotalQuestions int                `json:"total_questions"`
}

// LoadingEvent tells players to show the waiting screen.
type LoadingEvent struct {
	Event         Event `json:"event"`
	QuestionIndex *int  `json:"question_index"`
}

// AnswerCountEvent updates admin viewers with the running answer count.
type AnswerCountEvent struct {
	Event Event `json:"event"`
	Count int   `json:"count"`
}

// RankingEvent carries a full recomputed session ranking.
type RankingEvent struct {
	Event   Event                `json:"event"`
	Ranking []model.RankingEntry `json:"ranking"`
}

// QuestionResultsEvent carries the per-option answer distribution.
type QuestionResultsEvent struct {
	Event        Event       `json:"event"`
	Counts       map[int]int `json:"counts"`
	CorrectIndex int         `json:"correct_index"`
}

// PodiumEvent reveals the final ranking to the whole session.
type PodiumEvent struct {
	Event   Event                `json:"event"`
	Ranking []model.RankingEntry `json:"ranking"`
}

// AnswerScoredEvent is the private per-answer result. IsCorrect is nil for
// a back-filled non-response.
type AnswerScoredEvent struct {
	Event     Event `json:"event"`
	IsCorrect *bool `json:"is_correct"`
	Points    int   `json:"points"`
}

// ScoreEvent is the private cumulative score push.
type ScoreEvent struct {
	Event Event `json:"event"`
	Score int   `json:"score"`
}

// CurrentStateEvent answers a player's state query. Question is nil when no
// question is active; Answer is nil when the player has not answered yet.
type CurrentStateEvent struct {
	Event          Event               `json:"event"`
	QuestionActive bool                `json:"question_active"`
	Question       *model.QuestionView `json:"question"`
	QuestionIndex  int                 `json:"question_index"`
	Answer         *model.AnswerRecord `json:"answer"`
}

// SessionNotFoundEvent signals that the requested pin resolves to nothing.
type SessionNotFoundEvent struct {
	Event Event `json:"event"`
}

// ErrorEvent reports a rejected or malformed request to its sender.
type ErrorEvent struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

// PongEvent answers a ping.
type PongEvent struct {
	Event Event `json:"event"`
}
