package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quizlive/quizlive-backend/internal/model"
	"github.com/quizlive/quizlive-backend/internal/repository"
)

// fakeBroadcaster records every push so tests can assert on the outbound
// contract without a real hub.
type fakeBroadcaster struct {
	mu sync.Mutex

	questions []model.QuestionView
	loading   []*int
	counts    []int
	rankings  [][]model.RankingEntry
	results   []map[int]int
	podiums   [][]model.RankingEntry
	scored    map[string][]scoredPush
	scores    map[string][]int
}

type scoredPush struct {
	isCorrect *bool
	points    int
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{
		scored: make(map[string][]scoredPush),
		scores: make(map[string][]int),
	}
}

func (f *fakeBroadcaster) QuestionPresented(pin string, q model.QuestionView, index, total int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions = append(f.questions, q)
}

func (f *fakeBroadcaster) Loading(pin string, questionIndex *int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = append(f.loading, questionIndex)
}

func (f *fakeBroadcaster) AnswerCountUpdated(pin string, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = append(f.counts, count)
}

func (f *fakeBroadcaster) RankingUpdated(pin string, ranking []model.RankingEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rankings = append(f.rankings, ranking)
}

func (f *fakeBroadcaster) QuestionResults(pin string, tally map[int]int, correctIndex int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, tally)
}

func (f *fakeBroadcaster) PodiumRevealed(pin string, ranking []model.RankingEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.podiums = append(f.podiums, ranking)
}

func (f *fakeBroadcaster) AnswerScored(playerID string, isCorrect *bool, points int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scored[playerID] = append(f.scored[playerID], scoredPush{isCorrect: isCorrect, points: points})
	return true
}

func (f *fakeBroadcaster) PlayerScore(playerID string, score int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores[playerID] = append(f.scores[playerID], score)
	return true
}

func (f *fakeBroadcaster) lastCount(t *testing.T) int {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.counts) == 0 {
		t.Fatal("no answer count was broadcast")
	}
	return f.counts[len(f.counts)-1]
}

func testQuestions() []model.Question {
	return []model.Question{
		{Text: "Q1", Options: []string{"a", "b", "c"}, CorrectOptionIndex: 1},
		{Text: "Q2", Options: []string{"x", "y"}, CorrectOptionIndex: 0},
	}
}

func newTestGame(t *testing.T) (*GameService, *fakeBroadcaster, *model.GameSession) {
	t.Helper()

	dir := t.TempDir()
	sessions, err := repository.NewSessionRepository(filepath.Join(dir, "sessions"), zerolog.Nop())
	if err != nil {
		t.Fatalf("session repository: %v", err)
	}
	leaderboard, err := repository.NewLeaderboardRepository(filepath.Join(dir, "players.json"))
	if err != nil {
		t.Fatalf("leaderboard repository: %v", err)
	}

	broadcaster := newFakeBroadcaster()
	game := NewGameService(sessions, leaderboard, broadcaster, AllowAllNames, zerolog.Nop())

	session, err := game.CreateSession(testQuestions())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return game, broadcaster, session
}

func joinPlayer(t *testing.T, game *GameService, pin, name string) *model.Player {
	t.Helper()
	player, err := game.JoinSession(pin, name)
	if err != nil {
		t.Fatalf("join %s: %v", name, err)
	}
	return player
}

func TestSubmitAnswerScoresAndBroadcasts(t *testing.T) {
	game, broadcaster, session := newTestGame(t)
	player := joinPlayer(t, game, session.Pin, "Ana")

	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present: %v", err)
	}
	if err := game.SubmitAnswer(session.Pin, player.ID, "1", 5); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if player.Score != 100 {
		t.Fatalf("score = %d, want 100", player.Score)
	}
	record := session.AnswerFor(0, player.ID)
	if record == nil || !record.IsCorrect || record.PointsEarned != 100 {
		t.Fatalf("record = %+v, want correct with 100 points", record)
	}
	if record.AnsweredAt == nil || record.Answer == nil || *record.Answer != "1" {
		t.Fatalf("record missing submission detail: %+v", record)
	}
	if got := broadcaster.lastCount(t); got != 1 {
		t.Fatalf("broadcast count = %d, want 1", got)
	}
	if len(broadcaster.rankings) == 0 {
		t.Fatal("no ranking was broadcast to admins")
	}
	pushes := broadcaster.scored[player.ID]
	if len(pushes) != 1 || pushes[0].isCorrect == nil || !*pushes[0].isCorrect || pushes[0].points != 100 {
		t.Fatalf("private result pushes = %+v, want one (true, 100)", pushes)
	}
}

func TestSubmitAnswerDuplicateIsSilentlyIgnored(t *testing.T) {
	game, broadcaster, session := newTestGame(t)
	player := joinPlayer(t, game, session.Pin, "Ana")

	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present: %v", err)
	}
	if err := game.SubmitAnswer(session.Pin, player.ID, "1", 0); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	countsBefore := len(broadcaster.counts)

	// The second submission must change nothing and broadcast nothing.
	if err := game.SubmitAnswer(session.Pin, player.ID, "2", 0); err != nil {
		t.Fatalf("duplicate submit returned error: %v", err)
	}

	if player.Score != 150 {
		t.Fatalf("score changed to %d on duplicate submit", player.Score)
	}
	record := session.AnswerFor(0, player.ID)
	if *record.Answer != "1" {
		t.Fatalf("record was merged: answer = %q", *record.Answer)
	}
	if len(session.AnswersByQuestion[0]) != 1 || session.AnswerCountsByQuestion[0] != 1 {
		t.Fatalf("counts diverged: map=%d counter=%d",
			len(session.AnswersByQuestion[0]), session.AnswerCountsByQuestion[0])
	}
	if len(broadcaster.counts) != countsBefore {
		t.Fatal("duplicate submit produced a broadcast")
	}
}

func TestSubmitAnswerRejectedWhenQuestionInactive(t *testing.T) {
	game, _, session := newTestGame(t)
	player := joinPlayer(t, game, session.Pin, "Ana")

	// No PresentQuestion call, so the gate is closed.
	if err := game.SubmitAnswer(session.Pin, player.ID, "1", 0); err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if player.Score != 0 || len(session.AnswersByQuestion[0]) != 0 {
		t.Fatal("closed question accepted an answer")
	}
}

func TestSubmitAnswerUnknownPinIsNoop(t *testing.T) {
	game, broadcaster, _ := newTestGame(t)
	if err := game.SubmitAnswer("00000", "ghost", "1", 0); err != nil {
		t.Fatalf("unknown pin returned error: %v", err)
	}
	if len(broadcaster.counts) != 0 {
		t.Fatal("unknown pin produced a broadcast")
	}
}

func TestEndQuestionBackfillsNonResponses(t *testing.T) {
	game, broadcaster, session := newTestGame(t)
	ana := joinPlayer(t, game, session.Pin, "Ana")
	bruno := joinPlayer(t, game, session.Pin, "Bruno")
	carla := joinPlayer(t, game, session.Pin, "Carla")

	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present: %v", err)
	}
	if err := game.SubmitAnswer(session.Pin, ana.ID, "1", 3); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := game.EndQuestion(session.Pin); err != nil {
		t.Fatalf("end: %v", err)
	}

	if session.IsQuestionActive {
		t.Fatal("question still active after EndQuestion")
	}
	answers := session.AnswersByQuestion[0]
	if len(answers) != 3 {
		t.Fatalf("answer records = %d, want 3", len(answers))
	}
	if session.AnswerCountsByQuestion[0] != 3 {
		t.Fatalf("counter = %d, want 3", session.AnswerCountsByQuestion[0])
	}
	for _, id := range []string{bruno.ID, carla.ID} {
		record := answers[id]
		if record.Answer != nil || record.AnsweredAt != nil || record.PointsEarned != 0 || record.IsCorrect {
			t.Fatalf("back-filled record for %s = %+v", id, record)
		}
		pushes := broadcaster.scored[id]
		if len(pushes) != 1 || pushes[0].isCorrect != nil || pushes[0].points != 0 {
			t.Fatalf("back-fill push for %s = %+v, want one (nil, 0)", id, pushes)
		}
	}
	if record := answers[ana.ID]; record.Answer == nil {
		t.Fatal("EndQuestion overwrote a real answer")
	}
}

func TestPlayerScoreEqualsSumOfRecordedPoints(t *testing.T) {
	game, _, session := newTestGame(t)
	player := joinPlayer(t, game, session.Pin, "Ana")

	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present q0: %v", err)
	}
	if err := game.SubmitAnswer(session.Pin, player.ID, "1", 2); err != nil {
		t.Fatalf("submit q0: %v", err)
	}
	if err := game.EndQuestion(session.Pin); err != nil {
		t.Fatalf("end q0: %v", err)
	}
	if err := game.NavigateToQuestion(session.Pin, 1); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present q1: %v", err)
	}
	if err := game.SubmitAnswer(session.Pin, player.ID, "0", 10); err != nil {
		t.Fatalf("submit q1: %v", err)
	}

	sum := 0
	for _, answers := range session.AnswersByQuestion {
		if record, ok := answers[player.ID]; ok {
			sum += record.PointsEarned
		}
	}
	if player.Score != sum {
		t.Fatalf("score %d != recorded points sum %d", player.Score, sum)
	}
	if player.Score != 130+50 {
		t.Fatalf("score = %d, want 180", player.Score)
	}
}

func TestNavigateToQuestionValidatesBounds(t *testing.T) {
	game, _, session := newTestGame(t)

	for _, target := range []int{-1, len(session.Questions)} {
		if err := game.NavigateToQuestion(session.Pin, target); err != ErrQuestionOutOfRange {
			t.Fatalf("navigate(%d) = %v, want ErrQuestionOutOfRange", target, err)
		}
		if session.CurrentQuestionIndex != 0 {
			t.Fatalf("navigate(%d) changed the index to %d", target, session.CurrentQuestionIndex)
		}
	}

	if err := game.NavigateToQuestion(session.Pin, 1); err != nil {
		t.Fatalf("navigate(1): %v", err)
	}
	if session.CurrentQuestionIndex != 1 || session.IsQuestionActive {
		t.Fatalf("after navigate: index=%d active=%v, want 1/false",
			session.CurrentQuestionIndex, session.IsQuestionActive)
	}
}

func TestPresentQuestionAgainKeepsEarlierAnswers(t *testing.T) {
	game, broadcaster, session := newTestGame(t)
	player := joinPlayer(t, game, session.Pin, "Ana")

	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present: %v", err)
	}
	if err := game.SubmitAnswer(session.Pin, player.ID, "1", 1); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := game.EndQuestion(session.Pin); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("re-present: %v", err)
	}

	// Re-presenting reports the already-recorded answers to admins.
	if got := broadcaster.lastCount(t); got != 1 {
		t.Fatalf("re-present count = %d, want 1", got)
	}
}

func TestConcurrentSubmissionsLoseNothing(t *testing.T) {
	game, _, session := newTestGame(t)

	const players = 40
	ids := make([]string, players)
	for i := range ids {
		ids[i] = joinPlayer(t, game, session.Pin, fmt.Sprintf("player-%d", i)).ID
	}
	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present: %v", err)
	}

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			// Half answer correctly, half don't.
			answer := "1"
			if i%2 == 1 {
				answer = "2"
			}
			if err := game.SubmitAnswer(session.Pin, id, answer, 1); err != nil {
				t.Errorf("submit %s: %v", id, err)
			}
		}(i, id)
	}
	wg.Wait()

	if got := len(session.AnswersByQuestion[0]); got != players {
		t.Fatalf("answer records = %d, want %d", got, players)
	}
	if got := session.AnswerCountsByQuestion[0]; got != players {
		t.Fatalf("counter = %d, want %d", got, players)
	}
	for i, id := range ids {
		player := session.FindPlayer(id)
		want := 140
		if i%2 == 1 {
			want = 0
		}
		if player.Score != want {
			t.Fatalf("player %d score = %d, want %d", i, player.Score, want)
		}
	}
}

func TestListSessionsDuringConcurrentJoins(t *testing.T) {
	game, _, session := newTestGame(t)

	const joins = 20
	var wg sync.WaitGroup
	for i := 0; i < joins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := game.JoinSession(session.Pin, fmt.Sprintf("player-%d", i)); err != nil {
				t.Errorf("join: %v", err)
			}
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, summary := range game.ListSessions() {
				if summary.PlayerCount < 0 || summary.PlayerCount > joins {
					t.Errorf("player count %d outside [0,%d]", summary.PlayerCount, joins)
				}
			}
		}()
	}
	wg.Wait()

	summaries := game.ListSessions()
	if len(summaries) != 1 || summaries[0].PlayerCount != joins {
		t.Fatalf("summaries = %+v, want one session with %d players", summaries, joins)
	}
}

func TestDeleteSessionCannotBeResurrectedByInFlightSubmits(t *testing.T) {
	dir := t.TempDir()
	sessionsDir := filepath.Join(dir, "sessions")
	sessions, err := repository.NewSessionRepository(sessionsDir, zerolog.Nop())
	if err != nil {
		t.Fatalf("session repository: %v", err)
	}
	leaderboard, err := repository.NewLeaderboardRepository(filepath.Join(dir, "players.json"))
	if err != nil {
		t.Fatalf("leaderboard repository: %v", err)
	}
	game := NewGameService(sessions, leaderboard, newFakeBroadcaster(), AllowAllNames, zerolog.Nop())

	session, err := game.CreateSession(testQuestions())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ids := make([]string, 10)
	for i := range ids {
		ids[i] = joinPlayer(t, game, session.Pin, fmt.Sprintf("player-%d", i)).ID
	}
	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present: %v", err)
	}

	// Submissions race the delete. Whichever side wins each turn of the
	// session mutex, a submission must never write the record back to disk
	// after the delete removed it.
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := game.SubmitAnswer(session.Pin, id, "1", 1); err != nil {
				t.Errorf("submit: %v", err)
			}
		}(id)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		existed, err := game.DeleteSession(session.ID)
		if err != nil || !existed {
			t.Errorf("delete = (%v, %v), want (true, nil)", existed, err)
		}
	}()
	wg.Wait()

	if _, err := os.Stat(filepath.Join(sessionsDir, session.ID+".json")); !os.IsNotExist(err) {
		t.Fatalf("durable record came back after delete: %v", err)
	}
	fresh, err := repository.NewSessionRepository(sessionsDir, zerolog.Nop())
	if err != nil {
		t.Fatalf("fresh repository: %v", err)
	}
	if err := fresh.LoadAll(); err != nil {
		t.Fatalf("load all: %v", err)
	}
	if got := len(fresh.All()); got != 0 {
		t.Fatalf("rehydrated %d sessions after delete, want 0", got)
	}
}

func TestQuestionResultsTallyExcludesUnparsableAnswers(t *testing.T) {
	game, broadcaster, session := newTestGame(t)
	ana := joinPlayer(t, game, session.Pin, "Ana")
	bruno := joinPlayer(t, game, session.Pin, "Bruno")
	carla := joinPlayer(t, game, session.Pin, "Carla")
	dora := joinPlayer(t, game, session.Pin, "Dora")

	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present: %v", err)
	}
	for id, answer := range map[string]string{ana.ID: "1", bruno.ID: "1", carla.ID: "0", dora.ID: "not-a-number"} {
		if err := game.SubmitAnswer(session.Pin, id, answer, 1); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if err := game.QuestionResults(session.Pin); err != nil {
		t.Fatalf("results: %v", err)
	}

	if len(broadcaster.results) != 1 {
		t.Fatalf("results broadcasts = %d, want 1", len(broadcaster.results))
	}
	tally := broadcaster.results[0]
	if tally[1] != 2 || tally[0] != 1 || len(tally) != 2 {
		t.Fatalf("tally = %v, want map[0:1 1:2]", tally)
	}
}

func TestCurrentRankingPushesIndividualScores(t *testing.T) {
	game, broadcaster, session := newTestGame(t)
	ana := joinPlayer(t, game, session.Pin, "Ana")
	bruno := joinPlayer(t, game, session.Pin, "Bruno")

	ranking, err := game.CurrentRanking(session.Pin, true)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(ranking) != 2 {
		t.Fatalf("ranking size = %d, want 2", len(ranking))
	}
	if len(broadcaster.rankings) != 1 {
		t.Fatalf("admin ranking broadcasts = %d, want 1", len(broadcaster.rankings))
	}
	for _, id := range []string{ana.ID, bruno.ID} {
		if len(broadcaster.scores[id]) != 1 {
			t.Fatalf("player %s received %d score pushes, want 1", id, len(broadcaster.scores[id]))
		}
	}

	// The non-broadcast variant still pushes individual scores.
	if _, err := game.CurrentRanking(session.Pin, false); err != nil {
		t.Fatalf("ranking without broadcast: %v", err)
	}
	if len(broadcaster.rankings) != 1 {
		t.Fatal("non-broadcast variant reached the admin audience")
	}
}

func TestCurrentStateReportsQuestionAndOwnAnswer(t *testing.T) {
	game, _, session := newTestGame(t)
	player := joinPlayer(t, game, session.Pin, "Ana")

	snapshot, err := game.CurrentState(session.Pin, player.ID)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if snapshot.QuestionActive {
		t.Fatal("no question presented but state reports active")
	}

	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present: %v", err)
	}
	if err := game.SubmitAnswer(session.Pin, player.ID, "1", 2); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snapshot, err = game.CurrentState(session.Pin, player.ID)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !snapshot.QuestionActive || snapshot.Question == nil {
		t.Fatalf("snapshot = %+v, want active question", snapshot)
	}
	if snapshot.Answer == nil || snapshot.Answer.PointsEarned != 130 {
		t.Fatalf("snapshot answer = %+v, want own 130-point record", snapshot.Answer)
	}

	if _, err := game.CurrentState("00000", player.ID); err == nil {
		t.Fatal("unknown pin did not surface not-found")
	}
}

func TestJoinSessionRespectsNameFilter(t *testing.T) {
	dir := t.TempDir()
	sessions, err := repository.NewSessionRepository(filepath.Join(dir, "sessions"), zerolog.Nop())
	if err != nil {
		t.Fatalf("session repository: %v", err)
	}
	leaderboard, err := repository.NewLeaderboardRepository(filepath.Join(dir, "players.json"))
	if err != nil {
		t.Fatalf("leaderboard repository: %v", err)
	}

	blockBob := func(name string) bool { return name != "Bob" }
	game := NewGameService(sessions, leaderboard, newFakeBroadcaster(), blockBob, zerolog.Nop())
	session, err := game.CreateSession(testQuestions())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := game.JoinSession(session.Pin, "Bob"); err != ErrNameNotAllowed {
		t.Fatalf("join Bob = %v, want ErrNameNotAllowed", err)
	}
	if _, err := game.JoinSession("00000", "Ana"); err != repository.ErrSessionNotFound {
		t.Fatalf("join unknown pin = %v, want ErrSessionNotFound", err)
	}

	player, err := game.JoinSession(session.Pin, "Ana")
	if err != nil {
		t.Fatalf("join Ana: %v", err)
	}
	if player.ID == "" || player.AvatarSeed == "" || !player.IsActive {
		t.Fatalf("player = %+v, want generated id and avatar seed", player)
	}
	if session.FindPlayer(player.ID) == nil {
		t.Fatal("player not registered on the session")
	}
}

func TestShowPodiumRecordsAllTimeScores(t *testing.T) {
	dir := t.TempDir()
	sessions, err := repository.NewSessionRepository(filepath.Join(dir, "sessions"), zerolog.Nop())
	if err != nil {
		t.Fatalf("session repository: %v", err)
	}
	leaderboard, err := repository.NewLeaderboardRepository(filepath.Join(dir, "players.json"))
	if err != nil {
		t.Fatalf("leaderboard repository: %v", err)
	}
	broadcaster := newFakeBroadcaster()
	game := NewGameService(sessions, leaderboard, broadcaster, AllowAllNames, zerolog.Nop())

	session, err := game.CreateSession(testQuestions())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ana := joinPlayer(t, game, session.Pin, "Ana")
	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present: %v", err)
	}
	if err := game.SubmitAnswer(session.Pin, ana.ID, "1", 0); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := game.ShowPodium(session.Pin); err != nil {
		t.Fatalf("podium: %v", err)
	}
	if len(broadcaster.podiums) != 1 {
		t.Fatalf("podium broadcasts = %d, want 1", len(broadcaster.podiums))
	}
	top := leaderboard.Top(5)
	if len(top) != 1 || top[0].Name != "Ana" || top[0].Score != 150 {
		t.Fatalf("leaderboard = %+v, want Ana with 150", top)
	}
}

// End-to-end lifecycle per the product flow: present, one player answers,
// the question closes, the absent player is back-filled.
func TestQuestionLifecycleEndToEnd(t *testing.T) {
	game, broadcaster, session := newTestGame(t)
	ana := joinPlayer(t, game, session.Pin, "Ana")
	bruno := joinPlayer(t, game, session.Pin, "Bruno")

	if err := game.PresentQuestion(session.Pin); err != nil {
		t.Fatalf("present: %v", err)
	}
	if err := game.SubmitAnswer(session.Pin, ana.ID, "1", 5); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ana.Score != 100 {
		t.Fatalf("Ana score = %d, want 100", ana.Score)
	}
	anaPushes := broadcaster.scored[ana.ID]
	if len(anaPushes) != 1 || anaPushes[0].isCorrect == nil || !*anaPushes[0].isCorrect || anaPushes[0].points != 100 {
		t.Fatalf("Ana pushes = %+v, want (true, 100)", anaPushes)
	}

	if err := game.EndQuestion(session.Pin); err != nil {
		t.Fatalf("end: %v", err)
	}
	record := session.AnswerFor(0, bruno.ID)
	if record == nil || record.Answer != nil || record.PointsEarned != 0 {
		t.Fatalf("Bruno record = %+v, want back-filled zero", record)
	}
	brunoPushes := broadcaster.scored[bruno.ID]
	if len(brunoPushes) != 1 || brunoPushes[0].isCorrect != nil || brunoPushes[0].points != 0 {
		t.Fatalf("Bruno pushes = %+v, want (nil, 0)", brunoPushes)
	}
}
