package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizlive/quizlive-backend/internal/model"
)

// ErrSessionNotFound is returned when neither memory nor disk holds the
// requested session.
var ErrSessionNotFound = errors.New("session not found")

const (
	pinMin  = 10000
	pinSpan = 90000
)

// SessionRepository is the single source of truth for game sessions. It keeps
// every live session in memory, dual-indexed by id and by join pin, and
// mirrors each one to a JSON document on disk after every mutation.
type SessionRepository struct {
	dir string
	log zerolog.Logger

	mu    sync.RWMutex
	byID  map[string]*model.GameSession
	byPin map[string]*model.GameSession

	// fileLocks serializes writes per session id so a concurrent Save for
	// the same record can never interleave. Entries live as long as the
	// process; sessions are few and short-lived.
	fileLocks sync.Map // session id -> *sync.Mutex
}

// NewSessionRepository creates the backing directory if needed.
func NewSessionRepository(dir string, log zerolog.Logger) (*SessionRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &SessionRepository{
		dir:   dir,
		log:   log.With().Str("component", "session_repository").Logger(),
		byID:  make(map[string]*model.GameSession),
		byPin: make(map[string]*model.GameSession),
	}, nil
}

// Create builds a new session around the given question list, assigns a
// fresh id and a pin that no live session uses, persists it and indexes it.
func (r *SessionRepository) Create(questions []model.Question) (*model.GameSession, error) {
	now := time.Now().UTC()
	session := &model.GameSession{
		ID:                     uuid.New().String(),
		Questions:              questions,
		CurrentQuestionIndex:   0,
		Players:                []*model.Player{},
		AnswersByQuestion:      make(map[int]map[string]*model.AnswerRecord),
		AnswerCountsByQuestion: make(map[int]int),
		CreatedAt:              now,
		LastUpdatedAt:          now,
	}

	r.mu.Lock()
	session.Pin = r.unusedPinLocked()
	r.byID[session.ID] = session
	r.byPin[session.Pin] = session
	r.mu.Unlock()

	if err := r.Save(session); err != nil {
		r.mu.Lock()
		delete(r.byID, session.ID)
		delete(r.byPin, session.Pin)
		r.mu.Unlock()
		return nil, err
	}

	r.log.Info().Str("session_id", session.ID).Str("pin", session.Pin).
		Int("questions", len(questions)).Msg("Session created")
	return session, nil
}

// unusedPinLocked samples 5-digit pins until one misses the live index.
// Caller must hold r.mu.
func (r *SessionRepository) unusedPinLocked() string {
	for {
		pin := strconv.Itoa(pinMin + rand.Intn(pinSpan))
		if _, taken := r.byPin[pin]; !taken {
			return pin
		}
	}
}

// GetByID returns the in-memory session, falling back to the persisted
// record and caching it into both indexes on success. A malformed record on
// disk is reported and treated as not found.
func (r *SessionRepository) GetByID(id string) (*model.GameSession, error) {
	r.mu.RLock()
	session, ok := r.byID[id]
	r.mu.RUnlock()
	if ok {
		return session, nil
	}

	loaded, err := r.readFile(r.sessionPath(id))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.log.Warn().Err(err).Str("session_id", id).Msg("Unreadable session record")
		}
		return nil, ErrSessionNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another caller may have loaded it while we read the file.
	if existing, ok := r.byID[id]; ok {
		return existing, nil
	}
	r.byID[loaded.ID] = loaded
	if loaded.Pin != "" {
		r.byPin[loaded.Pin] = loaded
	}
	return loaded, nil
}

// GetByPin is a memory-only lookup. Sessions reach the pin index through
// Create, GetByID or LoadAll.
func (r *SessionRepository) GetByPin(pin string) (*model.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.byPin[pin]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// All returns a snapshot of every live session.
func (r *SessionRepository) All() []*model.GameSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessions := make([]*model.GameSession, 0, len(r.byID))
	for _, s := range r.byID {
		sessions = append(sessions, s)
	}
	return sessions
}

// Save refreshes LastUpdatedAt and replaces the session's durable record as
// a whole. Writes for the same id are serialized.
func (r *SessionRepository) Save(session *model.GameSession) error {
	lock, _ := r.fileLocks.LoadOrStore(session.ID, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	session.LastUpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	if err := os.WriteFile(r.sessionPath(session.ID), data, 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", session.ID, err)
	}
	return nil
}

// Remove drops the session from both indexes and deletes its durable record.
// It reports whether a session existed and is safe to call twice.
func (r *SessionRepository) Remove(id string) (bool, error) {
	r.mu.Lock()
	session, existed := r.byID[id]
	if existed {
		delete(r.byID, id)
		if session.Pin != "" {
			delete(r.byPin, session.Pin)
		}
	}
	r.mu.Unlock()

	if err := os.Remove(r.sessionPath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return existed, fmt.Errorf("delete session %s: %w", id, err)
	}
	if existed {
		r.log.Info().Str("session_id", id).Msg("Session removed")
	}
	return existed, nil
}

// LoadAll replaces the in-memory state with every readable record on disk.
// Called once at process start. Corrupt records are logged and skipped.
func (r *SessionRepository) LoadAll() error {
	entries, err := filepath.Glob(filepath.Join(r.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("scan session dir: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]*model.GameSession)
	r.byPin = make(map[string]*model.GameSession)

	for _, path := range entries {
		session, err := r.readFile(path)
		if err != nil {
			r.log.Warn().Err(err).Str("file", path).Msg("Skipping unreadable session record")
			continue
		}
		r.byID[session.ID] = session
		if session.Pin != "" {
			r.byPin[session.Pin] = session
		}
	}

	r.log.Info().Int("sessions", len(r.byID)).Msg("Sessions rehydrated")
	return nil
}

func (r *SessionRepository) sessionPath(id string) string {
	return filepath.Join(r.dir, id+".json")
}

func (r *SessionRepository) readFile(path string) (*model.GameSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	if session.ID == "" {
		return nil, fmt.Errorf("session record %s has no id", path)
	}
	return &session, nil
}
