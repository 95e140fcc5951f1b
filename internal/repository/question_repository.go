package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quizlive/quizlive-backend/internal/model"
)

// QuestionRepository loads question lists from JSON files.
type QuestionRepository struct {
	defaultPath string
}

// NewQuestionRepository remembers the default question file path.
func NewQuestionRepository(defaultPath string) *QuestionRepository {
	return &QuestionRepository{defaultPath: defaultPath}
}

// LoadDefault reads the configured default question file.
func (r *QuestionRepository) LoadDefault() ([]model.Question, error) {
	return r.LoadFromFile(r.defaultPath)
}

// LoadFromFile reads and decodes a question list from the given path.
func (r *QuestionRepository) LoadFromFile(path string) ([]model.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}
	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questions file %s: %w", path, err)
	}
	return questions, nil
}
