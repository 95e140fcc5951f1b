package service

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizlive/quizlive-backend/internal/model"
	"github.com/quizlive/quizlive-backend/internal/repository"
)

// Lifecycle errors surfaced to callers. Unknown sessions and duplicate
// submissions are intentionally NOT errors: those handlers no-op.
var (
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrNameNotAllowed     = errors.New("player name not allowed")
	ErrNoQuestions        = errors.New("session needs at least one question")
)

// NameFilter vets a requested display name. The forbidden-word list itself
// is an external collaborator; the engine only honors the verdict.
type NameFilter func(name string) bool

// AllowAllNames is the default NameFilter.
func AllowAllNames(string) bool { return true }

// StateSnapshot answers a player's "where are we" query after a reconnect.
type StateSnapshot struct {
	QuestionActive bool
	Question       *model.QuestionView
	QuestionIndex  int
	Answer         *model.AnswerRecord
}

// GameService drives the question lifecycle of live sessions. Every mutating
// operation runs under a per-session mutex covering the whole
// read-modify-persist sequence, so concurrent submissions can never
// interleave on the answer maps, counters or player scores. Operations on
// different sessions proceed independently.
type GameService struct {
	sessions    *repository.SessionRepository
	leaderboard *repository.LeaderboardRepository
	broadcaster Broadcaster
	nameFilter  NameFilter
	log         zerolog.Logger

	locks sync.Map // pin -> *sync.Mutex
}

// NewGameService wires the lifecycle engine. Pass AllowAllNames when no
// external name filter is configured.
func NewGameService(
	sessions *repository.SessionRepository,
	leaderboard *repository.LeaderboardRepository,
	broadcaster Broadcaster,
	nameFilter NameFilter,
	log zerolog.Logger,
) *GameService {
	if nameFilter == nil {
		nameFilter = AllowAllNames
	}
	return &GameService{
		sessions:    sessions,
		leaderboard: leaderboard,
		broadcaster: broadcaster,
		nameFilter:  nameFilter,
		log:         log.With().Str("component", "game_service").Logger(),
	}
}

// lockFor returns the mutex serializing all work on one session's pin.
func (s *GameService) lockFor(pin string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(pin, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// ─── Session administration ────────────────────────────────────────

// CreateSession builds a new session from a finalized question list.
func (s *GameService) CreateSession(questions []model.Question) (*model.GameSession, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return s.sessions.Create(questions)
}

// ListSessions returns admin-facing summaries of every live session. Each
// summary is snapshotted under its session's mutex so a concurrent join or
// submission cannot be observed mid-mutation.
func (s *GameService) ListSessions() []model.SessionSummary {
	live := s.sessions.All()
	summaries := make([]model.SessionSummary, 0, len(live))
	for _, sess := range live {
		mu := s.lockFor(sess.Pin)
		mu.Lock()
		summaries = append(summaries, model.SessionSummary{
			ID:                   sess.ID,
			Pin:                  sess.Pin,
			QuestionCount:        len(sess.Questions),
			PlayerCount:          len(sess.Players),
			CurrentQuestionIndex: sess.CurrentQuestionIndex,
			IsQuestionActive:     sess.IsQuestionActive,
			CreatedAt:            sess.CreatedAt.Format(time.RFC3339),
		})
		mu.Unlock()
	}
	return summaries
}

// DeleteSession removes a session and its durable record. The removal runs
// under the session's mutex, so an in-flight mutation that already fetched
// the session finishes its save first and cannot write the record back
// after it was deleted.
func (s *GameService) DeleteSession(id string) (bool, error) {
	session, err := s.sessions.GetByID(id)
	if err != nil {
		// Unknown id; Remove stays the idempotent source of truth.
		return s.sessions.Remove(id)
	}

	mu := s.lockFor(session.Pin)
	mu.Lock()
	defer mu.Unlock()
	return s.sessions.Remove(id)
}

// JoinSession registers a new player on a live session and returns them.
func (s *GameService) JoinSession(pin, name string) (*model.Player, error) {
	if !s.nameFilter(name) {
		return nil, ErrNameNotAllowed
	}

	mu := s.lockFor(pin)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetByPin(pin)
	if err != nil {
		return nil, err
	}

	player := &model.Player{
		ID:         uuid.New().String(),
		Name:       name,
		Score:      0,
		AvatarSeed: uuid.New().String(),
		IsActive:   true,
	}
	session.Players = append(session.Players, player)
	if err := s.sessions.Save(session); err != nil {
		session.Players = session.Players[:len(session.Players)-1]
		return nil, err
	}

	s.log.Info().Str("pin", pin).Str("player_id", player.ID).
		Str("name", player.Name).Msg("Player joined")
	return player, nil
}

// ─── Question lifecycle ────────────────────────────────────────────

// PresentQuestion opens the current question for answers and pushes it to
// the session audience. Re-presenting is allowed; the admin counter then
// starts from the already-recorded answers.
func (s *GameService) PresentQuestion(pin string) error {
	mu := s.lockFor(pin)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetByPin(pin)
	if err != nil {
		return nil // unknown session: no work, no signal
	}
	question, ok := session.CurrentQuestion()
	if !ok {
		return ErrQuestionOutOfRange
	}

	idx := session.CurrentQuestionIndex
	session.EnsureAnswerMaps(idx)
	session.IsQuestionActive = true

	if err := s.sessions.Save(session); err != nil {
		s.log.Error().Err(err).Str("pin", pin).Msg("Present question persist failed")
		return err
	}

	s.broadcaster.QuestionPresented(pin, question.View(), idx, len(session.Questions))
	s.broadcaster.AnswerCountUpdated(pin, len(session.AnswersByQuestion[idx]))
	return nil
}

// NavigateToQuestion moves the session to another question without opening
// it. Out-of-range targets are rejected before any state changes.
func (s *GameService) NavigateToQuestion(pin string, targetIndex int) error {
	mu := s.lockFor(pin)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetByPin(pin)
	if err != nil {
		return nil
	}
	if targetIndex < 0 || targetIndex >= len(session.Questions) {
		return ErrQuestionOutOfRange
	}

	session.CurrentQuestionIndex = targetIndex
	session.EnsureAnswerMaps(targetIndex)
	session.IsQuestionActive = false

	if err := s.sessions.Save(session); err != nil {
		s.log.Error().Err(err).Str("pin", pin).Msg("Navigate persist failed")
		return err
	}

	s.broadcaster.QuestionPresented(pin, session.Questions[targetIndex].View(), targetIndex, len(session.Questions))
	s.broadcaster.AnswerCountUpdated(pin, len(session.AnswersByQuestion[targetIndex]))
	return nil
}

// SubmitAnswer records one player's answer to the current question. The call
// is a silent no-op when the session is unknown, the question is closed, or
// the player already has a record for this question — exactly one record may
// ever exist per (session, question, player).
func (s *GameService) SubmitAnswer(pin, playerID, answer string, elapsedSeconds int) error {
	mu := s.lockFor(pin)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetByPin(pin)
	if err != nil || !session.IsQuestionActive {
		return nil
	}
	question, ok := session.CurrentQuestion()
	if !ok {
		return nil
	}
	player := session.FindPlayer(playerID)
	if player == nil {
		return nil
	}

	idx := session.CurrentQuestionIndex
	session.EnsureAnswerMaps(idx)
	if _, already := session.AnswersByQuestion[idx][playerID]; already {
		return nil
	}

	isCorrect, points := EvaluateAnswer(question, answer, elapsedSeconds)
	now := time.Now().UTC()
	record := &model.AnswerRecord{
		QuestionIndex: idx,
		Answer:        &answer,
		IsCorrect:     isCorrect,
		PointsEarned:  points,
		AnsweredAt:    &now,
	}

	session.AnswersByQuestion[idx][playerID] = record
	session.AnswerCountsByQuestion[idx]++
	player.Score += points

	if err := s.sessions.Save(session); err != nil {
		// Roll back the visible mutation so memory does not diverge from
		// durable truth, and broadcast nothing.
		delete(session.AnswersByQuestion[idx], playerID)
		session.AnswerCountsByQuestion[idx]--
		player.Score -= points
		s.log.Error().Err(err).Str("pin", pin).Str("player_id", playerID).
			Msg("Answer persist failed")
		return err
	}

	s.broadcaster.AnswerCountUpdated(pin, len(session.AnswersByQuestion[idx]))
	s.broadcaster.RankingUpdated(pin, CalculateRanking(session))
	s.broadcaster.AnswerScored(playerID, &isCorrect, points)
	return nil
}

// EndQuestion closes the current question and back-fills a zero record for
// every player who never submitted. Back-filled players are notified
// individually with a nil correctness.
func (s *GameService) EndQuestion(pin string) error {
	mu := s.lockFor(pin)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetByPin(pin)
	if err != nil {
		return nil
	}

	session.IsQuestionActive = false
	idx := session.CurrentQuestionIndex
	session.EnsureAnswerMaps(idx)
	answers := session.AnswersByQuestion[idx]

	var backfilled []string
	for _, player := range session.Players {
		if _, answered := answers[player.ID]; answered {
			continue
		}
		answers[player.ID] = &model.AnswerRecord{
			QuestionIndex: idx,
			Answer:        nil,
			IsCorrect:     false,
			PointsEarned:  0,
			AnsweredAt:    nil,
		}
		session.AnswerCountsByQuestion[idx]++
		backfilled = append(backfilled, player.ID)
	}

	if err := s.sessions.Save(session); err != nil {
		s.log.Error().Err(err).Str("pin", pin).Msg("End question persist failed")
		return err
	}

	for _, playerID := range backfilled {
		s.broadcaster.AnswerScored(playerID, nil, 0)
	}
	return nil
}

// QuestionResults tallies the recorded answers for the current question per
// chosen option and pushes the distribution to admin viewers. Answers that
// do not parse as an option index are left out of the tally.
func (s *GameService) QuestionResults(pin string) error {
	mu := s.lockFor(pin)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetByPin(pin)
	if err != nil {
		return nil
	}
	question, ok := session.CurrentQuestion()
	if !ok {
		return ErrQuestionOutOfRange
	}

	tally := make(map[int]int)
	for _, record := range session.AnswersByQuestion[session.CurrentQuestionIndex] {
		if record.Answer == nil {
			continue
		}
		optionIdx, err := strconv.Atoi(*record.Answer)
		if err != nil {
			continue
		}
		tally[optionIdx]++
	}

	s.broadcaster.QuestionResults(pin, tally, question.CorrectOptionIndex)
	return nil
}

// CurrentRanking recomputes the leaderboard, pushes each player their own
// cumulative score, and — when broadcast is set — pushes the full ranking to
// admin viewers. The computed ranking is returned either way.
func (s *GameService) CurrentRanking(pin string, broadcast bool) ([]model.RankingEntry, error) {
	mu := s.lockFor(pin)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetByPin(pin)
	if err != nil {
		return nil, err
	}

	ranking := CalculateRanking(session)
	for _, player := range session.Players {
		s.broadcaster.PlayerScore(player.ID, player.Score)
	}
	if broadcast {
		s.broadcaster.RankingUpdated(pin, ranking)
	}
	return ranking, nil
}

// AnswerCount reports how many answers are recorded for a question index.
func (s *GameService) AnswerCount(pin string, questionIndex int) (int, error) {
	mu := s.lockFor(pin)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetByPin(pin)
	if err != nil {
		return 0, err
	}
	return len(session.AnswersByQuestion[questionIndex]), nil
}

// CurrentState answers a (re)connecting player's state query: the active
// question plus their existing answer, or the waiting screen index when no
// question is live. Unknown pins surface repository.ErrSessionNotFound so
// the hub can send the not-found signal.
func (s *GameService) CurrentState(pin, playerID string) (*StateSnapshot, error) {
	mu := s.lockFor(pin)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetByPin(pin)
	if err != nil {
		return nil, err
	}

	idx := session.CurrentQuestionIndex
	if !session.IsQuestionActive {
		return &StateSnapshot{QuestionActive: false, QuestionIndex: idx}, nil
	}

	snapshot := &StateSnapshot{QuestionActive: true, QuestionIndex: idx}
	if question, ok := session.CurrentQuestion(); ok {
		view := question.View()
		snapshot.Question = &view
	}
	snapshot.Answer = session.AnswerFor(idx, playerID)
	return snapshot, nil
}

// ShowLoading tells the session's players to display the waiting screen.
func (s *GameService) ShowLoading(pin string, questionIndex *int) {
	s.broadcaster.Loading(pin, questionIndex)
}

// ShowPodium is the terminal transition: it reveals the final ranking to the
// whole session and records every player's score on the all-time list.
func (s *GameService) ShowPodium(pin string) error {
	mu := s.lockFor(pin)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetByPin(pin)
	if err != nil {
		return nil
	}

	ranking := CalculateRanking(session)
	s.broadcaster.PodiumRevealed(pin, ranking)

	for _, player := range session.Players {
		if err := s.leaderboard.AddOrUpdate(player.Name, player.Score); err != nil {
			s.log.Error().Err(err).Str("player", player.Name).
				Msg("Recording final score failed")
		}
	}
	return nil
}
