package model

// AdminLoginRequest is the payload for the admin login endpoint.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// CreateSessionRequest is the payload for creating a new game session.
// An empty question list means "use the configured default question file".
type CreateSessionRequest struct {
	Questions []Question `json:"questions" binding:"omitempty,dive"`
}

// JoinSessionRequest is the payload for a player joining by pin.
type JoinSessionRequest struct {
	Pin  string `json:"pin" binding:"required,numeric,len=5"`
	Name string `json:"name" binding:"required,min=1,max=40"`
}

// SessionSummary is the admin-facing listing shape for a live session.
type SessionSummary struct {
	ID                   string `json:"id"`
	Pin                  string `json:"pin"`
	QuestionCount        int    `json:"question_count"`
	PlayerCount          int    `json:"player_count"`
	CurrentQuestionIndex int    `json:"current_question_index"`
	IsQuestionActive     bool   `json:"is_question_active"`
	CreatedAt            string `json:"created_at"`
}
