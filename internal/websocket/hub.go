package websocket

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/quizlive/quizlive-backend/internal/model"
	"github.com/quizlive/quizlive-backend/internal/repository"
	"github.com/quizlive/quizlive-backend/internal/service"
)

// ClientRequest pairs an inbound frame with its sender.
type ClientRequest struct {
	Client *Client
	Raw    []byte
}

// Hub owns every live connection, grouped per session pin. Each connection
// is part of its session's audience; connections with the admin role
// additionally receive admin-only events. Targeted pushes go through the
// injected Registry. All externally triggered game operations enter here
// and are dispatched to the game service.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	Inbound    chan *ClientRequest

	game     *service.GameService
	sessions *repository.SessionRepository
	registry *Registry
	log      zerolog.Logger

	mu      sync.RWMutex
	clients map[string]map[*Client]bool // pin -> connections
}

// NewHub wires the hub. The game service is attached afterwards with
// SetGameService because the service broadcasts through the hub.
func NewHub(sessions *repository.SessionRepository, registry *Registry, log zerolog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Inbound:    make(chan *ClientRequest),
		sessions:   sessions,
		registry:   registry,
		log:        log.With().Str("component", "hub").Logger(),
		clients:    make(map[string]map[*Client]bool),
	}
}

// SetGameService attaches the lifecycle engine. Must be called before Run.
func (h *Hub) SetGameService(game *service.GameService) {
	h.game = game
}

// Run processes connection and message events until the process exits.
// Inbound frames are dispatched on their own goroutines: game operations
// persist session state synchronously, and a slow write for one session must
// not stall traffic for the others. The per-session mutex inside the game
// service supplies the ordering each session needs.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		case req := <-h.Inbound:
			go h.dispatch(req.Client, req.Raw)
		}
	}
}

// registerClient joins the client to its session audience and, for players,
// binds the targeted-delivery registry. An unknown pin gets the not-found
// signal but keeps its connection for retries.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	if h.clients[client.Pin] == nil {
		h.clients[client.Pin] = make(map[*Client]bool)
	}
	h.clients[client.Pin][client] = true
	h.mu.Unlock()

	if client.Role == RolePlayer && client.PlayerID != "" {
		h.registry.Bind(client.PlayerID, client)
	}

	if _, err := h.sessions.GetByPin(client.Pin); err != nil {
		client.SendEvent(SessionNotFoundEvent{Event: EventSessionNotFound})
	}

	h.log.Info().Str("pin", client.Pin).Str("player_id", client.PlayerID).
		Str("role", string(client.Role)).Msg("Client connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if conns, ok := h.clients[client.Pin]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			client.closeSend()
			if len(conns) == 0 {
				delete(h.clients, client.Pin)
			}
		}
	}
	h.mu.Unlock()

	h.registry.Unbind(client)
	h.log.Info().Str("pin", client.Pin).Str("player_id", client.PlayerID).
		Msg("Client disconnected")
}

// dispatch routes one inbound frame. Admin actions from non-admin
// connections are rejected without touching session state.
func (h *Hub) dispatch(client *Client, raw []byte) {
	var envelope RequestEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		client.SendError("invalid message format")
		return
	}

	switch envelope.Action {
	case ActionPing:
		client.SendEvent(PongEvent{Event: EventPong})

	case ActionSubmitAnswer:
		var req SubmitAnswerRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			client.SendError("invalid submit_answer payload")
			return
		}
		if err := h.game.SubmitAnswer(client.Pin, client.PlayerID, req.Answer, req.ElapsedSeconds); err != nil {
			client.SendError("answer could not be recorded")
		}

	case ActionRequestState:
		h.handleRequestState(client)

	case ActionPresentQuestion, ActionNavigateToQuestion, ActionEndQuestion,
		ActionRequestResults, ActionRequestRanking, ActionBroadcastRanking,
		ActionShowLoading, ActionRequestAnswerCount, ActionShowPodium:
		if client.Role != RoleAdmin {
			client.SendError("admin role required")
			return
		}
		h.dispatchAdmin(client, envelope.Action, raw)

	default:
		client.SendError("unknown action: " + string(envelope.Action))
	}
}

func (h *Hub) dispatchAdmin(client *Client, action Action, raw []byte) {
	var err error

	switch action {
	case ActionPresentQuestion:
		err = h.game.PresentQuestion(client.Pin)

	case ActionNavigateToQuestion:
		var req NavigateRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			client.SendError("invalid navigate payload")
			return
		}
		err = h.game.NavigateToQuestion(client.Pin, req.TargetIndex)

	case ActionEndQuestion:
		err = h.game.EndQuestion(client.Pin)

	case ActionRequestResults:
		err = h.game.QuestionResults(client.Pin)

	case ActionRequestRanking:
		h.replyRanking(client, false)
		return

	case ActionBroadcastRanking:
		h.replyRanking(client, true)
		return

	case ActionShowLoading:
		var req ShowLoadingRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			client.SendError("invalid show_loading payload")
			return
		}
		h.game.ShowLoading(client.Pin, req.QuestionIndex)
		return

	case ActionRequestAnswerCount:
		var req AnswerCountRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			client.SendError("invalid answer count payload")
			return
		}
		count, err := h.game.AnswerCount(client.Pin, req.QuestionIndex)
		if err != nil {
			count = 0
		}
		client.SendEvent(AnswerCountEvent{Event: EventAnswerCount, Count: count})
		return

	case ActionShowPodium:
		err = h.game.ShowPodium(client.Pin)
	}

	if err != nil {
		if errors.Is(err, service.ErrQuestionOutOfRange) {
			client.SendError("question index out of range")
			return
		}
		client.SendError("operation failed")
	}
}

// replyRanking serves both ranking variants; the broadcast one additionally
// reaches the admin audience through the game service.
func (h *Hub) replyRanking(client *Client, broadcast bool) {
	ranking, err := h.game.CurrentRanking(client.Pin, broadcast)
	if err != nil {
		ranking = []model.RankingEntry{}
	}
	client.SendEvent(RankingEvent{Event: EventRanking, Ranking: ranking})
}

func (h *Hub) handleRequestState(client *Client) {
	snapshot, err := h.game.CurrentState(client.Pin, client.PlayerID)
	if err != nil {
		client.SendEvent(SessionNotFoundEvent{Event: EventSessionNotFound})
		return
	}
	if !snapshot.QuestionActive {
		client.SendEvent(LoadingEvent{Event: EventLoading, QuestionIndex: &snapshot.QuestionIndex})
		return
	}
	client.SendEvent(CurrentStateEvent{
		Event:          EventCurrentState,
		QuestionActive: true,
		Question:       snapshot.Question,
		QuestionIndex:  snapshot.QuestionIndex,
		Answer:         snapshot.Answer,
	})
}

// ─── service.Broadcaster implementation ─────────────────────────────

// QuestionPresented pushes a question to every connection of the session.
func (h *Hub) QuestionPresented(pin string, question model.QuestionView, index, total int) {
	h.toSession(pin, QuestionEvent{
		Event:          EventQuestion,
		Question:       question,
		QuestionIndex:  index,
		TotalQuestions: total,
	})
}

// Loading pushes the waiting screen to every connection of the session.
func (h *Hub) Loading(pin string, questionIndex *int) {
	h.toSession(pin, LoadingEvent{Event: EventLoading, QuestionIndex: questionIndex})
}

// AnswerCountUpdated pushes the running count to admin viewers only.
func (h *Hub) AnswerCountUpdated(pin string, count int) {
	h.toAdmins(pin, AnswerCountEvent{Event: EventAnswerCount, Count: count})
}

// RankingUpdated pushes a recomputed ranking to admin viewers only.
func (h *Hub) RankingUpdated(pin string, ranking []model.RankingEntry) {
	h.toAdmins(pin, RankingEvent{Event: EventRanking, Ranking: ranking})
}

// QuestionResults pushes the answer distribution to admin viewers only.
func (h *Hub) QuestionResults(pin string, tally map[int]int, correctIndex int) {
	h.toAdmins(pin, QuestionResultsEvent{
		Event:        EventQuestionResults,
		Counts:       tally,
		CorrectIndex: correctIndex,
	})
}

// PodiumRevealed pushes the final ranking to the whole session.
func (h *Hub) PodiumRevealed(pin string, ranking []model.RankingEntry) {
	h.toSession(pin, PodiumEvent{Event: EventPodium, Ranking: ranking})
}

// AnswerScored delivers a private answer result, reporting whether the
// player currently resolves to a live connection.
func (h *Hub) AnswerScored(playerID string, isCorrect *bool, points int) bool {
	client, ok := h.registry.Resolve(playerID)
	if !ok {
		return false
	}
	client.SendEvent(AnswerScoredEvent{Event: EventAnswerScored, IsCorrect: isCorrect, Points: points})
	return true
}

// PlayerScore delivers a private cumulative score push.
func (h *Hub) PlayerScore(playerID string, score int) bool {
	client, ok := h.registry.Resolve(playerID)
	if !ok {
		return false
	}
	client.SendEvent(ScoreEvent{Event: EventScore, Score: score})
	return true
}

func (h *Hub) toSession(pin string, event interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[pin] {
		client.SendEvent(event)
	}
}

func (h *Hub) toAdmins(pin string, event interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[pin] {
		if client.Role == RoleAdmin {
			client.SendEvent(event)
		}
	}
}
