package model

// Question is one entry of a session's fixed question list.
type Question struct {
	Text               string   `json:"text"`
	ImageURL           string   `json:"image_url,omitempty"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
}

// QuestionView is a question as shown to players: no correct answer.
type QuestionView struct {
	Text     string   `json:"text"`
	ImageURL string   `json:"image_url,omitempty"`
	Options  []string `json:"options"`
}

// View strips the correct option index for delivery to player clients.
func (q Question) View() QuestionView {
	return QuestionView{
		Text:     q.Text,
		ImageURL: q.ImageURL,
		Options:  q.Options,
	}
}
