package dialog

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/liftbot/core/logger"
	"github.com/m3rciful/liftbot/internal/program"
	"github.com/m3rciful/liftbot/internal/session"
	"github.com/m3rciful/liftbot/internal/store"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	os.Exit(m.Run())
}

type sentMsg struct {
	chatID int64
	text   string
	markup *tele.ReplyMarkup
}

type fakeSender struct {
	msgs []sentMsg
}

func (s *fakeSender) Send(_ context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error {
	s.msgs = append(s.msgs, sentMsg{chatID: chatID, text: text, markup: markup})
	return nil
}

func (s *fakeSender) last(t *testing.T) sentMsg {
	t.Helper()
	if len(s.msgs) == 0 {
		t.Fatal("no messages sent")
	}
	return s.msgs[len(s.msgs)-1]
}

type commitCall struct {
	userID    int64
	programID int64
	day       int
	exercise  int
	set       int
	field     program.Field
	value     int
}

type fakeStore struct {
	userID    int64
	username  string
	password  string
	prog      *program.Program
	commits   []commitCall
	commitErr error
}

func (f *fakeStore) VerifyCredentials(_ context.Context, username, password string) (int64, error) {
	if username == f.username && password == f.password {
		return f.userID, nil
	}
	return 0, store.ErrNotFound
}

func (f *fakeStore) UsernameExists(_ context.Context, username string) (bool, error) {
	return username == f.username, nil
}

func (f *fakeStore) RegisterUser(_ context.Context, username, _ string) error {
	if username == f.username {
		return store.ErrExists
	}
	return nil
}

func (f *fakeStore) ListPrograms(_ context.Context, userID int64) ([]store.ProgramRef, error) {
	if userID != f.userID || f.prog == nil {
		return nil, nil
	}
	return []store.ProgramRef{{ID: f.prog.ID, Name: f.prog.Name}}, nil
}

func (f *fakeStore) ProgramDetails(_ context.Context, userID int64) (string, error) {
	if userID != f.userID || f.prog == nil {
		return "", nil
	}
	return f.prog.String(), nil
}

func (f *fakeStore) ProgramBelongsToUser(_ context.Context, userID, programID int64) (bool, error) {
	return userID == f.userID && f.prog != nil && f.prog.ID == programID, nil
}

func (f *fakeStore) LoadProgram(_ context.Context, userID, programID int64) (*program.Program, error) {
	if userID != f.userID || f.prog == nil || f.prog.ID != programID {
		return nil, store.ErrNotFound
	}
	return f.prog, nil
}

func (f *fakeStore) CommitSetUpdate(_ context.Context, userID, programID int64, dayIndex, exerciseNum, setNum int, field program.Field, value int) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.commits = append(f.commits, commitCall{
		userID:    userID,
		programID: programID,
		day:       dayIndex,
		exercise:  exerciseNum,
		set:       setNum,
		field:     field,
		value:     value,
	})
	return nil
}

func testProgram() *program.Program {
	return &program.Program{
		ID:   7,
		Name: "Strength",
		Days: []program.DayProgram{
			{
				ID:        10,
				DayNumber: 1,
				Name:      "Push",
				Exercises: []program.Exercise{
					{
						ID:   100,
						Name: "Bench",
						Sets: []program.ExerciseSet{
							{Number: 1, Reps: 8, Weight: 80, RestSeconds: 120},
							{Number: 2, Reps: 6, Weight: 85, RestSeconds: 120},
						},
					},
					{
						ID:   101,
						Name: "Press",
						Sets: []program.ExerciseSet{
							{Number: 1, Reps: 10, Weight: 40, RestSeconds: 90},
						},
					},
				},
			},
			{
				ID:        11,
				DayNumber: 2,
				Name:      "Pull",
				Exercises: []program.Exercise{
					{
						ID:   102,
						Name: "Row",
						Sets: []program.ExerciseSet{
							{Number: 1, Reps: 12, Weight: 60, RestSeconds: 60},
						},
					},
				},
			},
		},
	}
}

const testChat = int64(1001)

func newTestEngine(t *testing.T) (*Engine, *fakeStore, *fakeSender) {
	t.Helper()
	st := &fakeStore{
		userID:   55,
		username: "alice",
		password: "secret",
		prog:     testProgram(),
	}
	snd := &fakeSender{}
	eng := NewEngine(Options{
		Sessions: session.NewStore(),
		Store:    st,
		Sender:   snd,
	})
	return eng, st, snd
}

func drive(t *testing.T, e *Engine, texts ...string) {
	t.Helper()
	for _, text := range texts {
		if err := e.HandleMessage(context.Background(), testChat, text); err != nil {
			t.Fatalf("HandleMessage(%q): %v", text, err)
		}
	}
}

func sessionOf(t *testing.T, e *Engine) *session.Session {
	t.Helper()
	sess, ok := e.sessions.Peek(testChat)
	if !ok {
		t.Fatal("no session created")
	}
	return sess
}

func login(t *testing.T, e *Engine) {
	t.Helper()
	drive(t, e, "/start", "alice", "secret")
	if got := sessionOf(t, e).State; got != session.StateAuthenticated {
		t.Fatalf("state after login = %q", got)
	}
}

func startWorkout(t *testing.T, e *Engine) {
	t.Helper()
	login(t, e)
	drive(t, e, "/select_program", "7", "1", "/start_workout")
	sess := sessionOf(t, e)
	if sess.State != session.StateStarted {
		t.Fatalf("state = %q, want started", sess.State)
	}
}

func TestDeadIgnoresEverythingButStart(t *testing.T) {
	e, _, snd := newTestEngine(t)
	drive(t, e, "hello", "/programs")
	sess := sessionOf(t, e)
	if sess.State != session.StateDead {
		t.Errorf("state = %q, want dead", sess.State)
	}
	if !strings.Contains(snd.last(t).text, "not registered") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}

	drive(t, e, "/start")
	if sess.State != session.StateLogin {
		t.Errorf("state after /start = %q, want login", sess.State)
	}
}

func TestLoginUnknownUsernameReprompts(t *testing.T) {
	e, _, snd := newTestEngine(t)
	drive(t, e, "/start", "bob")
	sess := sessionOf(t, e)
	if sess.State != session.StateLogin || sess.LoginSub != session.LoginNone {
		t.Errorf("state = %q/%q, want login/none", sess.State, sess.LoginSub)
	}
	if !strings.Contains(snd.last(t).text, "Unknown username") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
}

func TestLoginSucceeds(t *testing.T) {
	e, _, _ := newTestEngine(t)
	login(t, e)
	sess := sessionOf(t, e)
	if sess.UserID != 55 {
		t.Errorf("user id = %d, want 55", sess.UserID)
	}
	if sess.LoginSub != session.LoginAuthenticated {
		t.Errorf("login sub = %q", sess.LoginSub)
	}
}

func TestLoginDeregistersAfterThreeFailures(t *testing.T) {
	e, _, snd := newTestEngine(t)
	drive(t, e, "/start", "alice", "wrong1", "wrong2")
	sess := sessionOf(t, e)
	if sess.State != session.StateLogin || sess.Attempts != 2 {
		t.Fatalf("state = %q, attempts = %d", sess.State, sess.Attempts)
	}
	if !strings.Contains(snd.last(t).text, "1 attempt(s) left") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}

	drive(t, e, "wrong3")
	if sess.State != session.StateDead {
		t.Errorf("state after third failure = %q, want dead", sess.State)
	}
	if sess.LoginName != "" || sess.Attempts != 0 || sess.UserID != 0 {
		t.Error("session identity must be reset")
	}
	if !strings.Contains(snd.last(t).text, "deregistered") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
}

func TestProgramsListing(t *testing.T) {
	e, _, snd := newTestEngine(t)
	login(t, e)
	drive(t, e, "/programs")
	if got := snd.last(t).text; !strings.Contains(got, "7 - Strength") {
		t.Errorf("listing = %q", got)
	}
	drive(t, e, "/details")
	if got := snd.last(t).text; !strings.Contains(got, "=== Day 1: Push ===") {
		t.Errorf("details = %q", got)
	}
}

func TestSelectProgramInvalidID(t *testing.T) {
	e, _, snd := newTestEngine(t)
	login(t, e)
	drive(t, e, "/select_program", "not-a-number")
	sess := sessionOf(t, e)
	if sess.State != session.StateAuthenticated || sess.Program != nil {
		t.Errorf("state = %q, program = %v", sess.State, sess.Program)
	}
	if !strings.Contains(snd.last(t).text, "cancelled") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
}

func TestSelectProgramNotOwned(t *testing.T) {
	e, _, _ := newTestEngine(t)
	login(t, e)
	drive(t, e, "/select_program", "99")
	sess := sessionOf(t, e)
	if sess.State != session.StateAuthenticated || sess.Program != nil {
		t.Errorf("state = %q after unowned selection", sess.State)
	}
}

func TestSelectProgramAndDay(t *testing.T) {
	e, _, _ := newTestEngine(t)
	login(t, e)
	drive(t, e, "/select_program", "7")
	sess := sessionOf(t, e)
	if sess.State != session.StateTypeDay || sess.Program == nil {
		t.Fatalf("state = %q, program = %v", sess.State, sess.Program)
	}
	drive(t, e, "1")
	if sess.State != session.StateReady || sess.DayIndex != 0 {
		t.Errorf("state = %q, day index = %d", sess.State, sess.DayIndex)
	}
}

func TestTypeDayOutOfRangeClearsSelection(t *testing.T) {
	e, _, snd := newTestEngine(t)
	login(t, e)
	drive(t, e, "/select_program", "7", "99")
	sess := sessionOf(t, e)
	if sess.State != session.StateAuthenticated {
		t.Errorf("state = %q, want authenticated", sess.State)
	}
	if sess.Program != nil || sess.DayIndex != -1 {
		t.Error("program and day must both be cleared")
	}
	if !strings.Contains(snd.last(t).text, "not a valid day") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
}

func TestReadyCancelRetainsProgram(t *testing.T) {
	e, _, _ := newTestEngine(t)
	login(t, e)
	drive(t, e, "/select_program", "7", "1", "/cancel")
	sess := sessionOf(t, e)
	if sess.State != session.StateAuthenticated {
		t.Errorf("state = %q, want authenticated", sess.State)
	}
	if sess.Program == nil {
		t.Error("program must be retained on /cancel")
	}
	if sess.DayIndex != -1 {
		t.Errorf("day index = %d, want -1", sess.DayIndex)
	}
}

func TestStartWorkoutCursor(t *testing.T) {
	e, _, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)
	if sess.Exercise != 1 || sess.Set != 1 {
		t.Errorf("cursor = (%d,%d), want (1,1)", sess.Exercise, sess.Set)
	}
	if got := snd.last(t).text; !strings.Contains(got, "Exercise 1/2: Bench") || !strings.Contains(got, "Set 1/2") {
		t.Errorf("display = %q", got)
	}
}

func TestNavigationBoundaries(t *testing.T) {
	e, _, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)

	drive(t, e, "/prev_exercise")
	if sess.Exercise != 1 {
		t.Errorf("prev_exercise at first moved cursor to %d", sess.Exercise)
	}
	if !strings.Contains(snd.last(t).text, "first exercise") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}

	drive(t, e, "/prev_set")
	if sess.Set != 1 {
		t.Errorf("prev_set at first moved cursor to %d", sess.Set)
	}
	if !strings.Contains(snd.last(t).text, "first set") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
}

func TestNextSetAdvancesWithinExercise(t *testing.T) {
	e, _, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)

	drive(t, e, "/next_set")
	if sess.Exercise != 1 || sess.Set != 2 {
		t.Errorf("cursor = (%d,%d), want (1,2)", sess.Exercise, sess.Set)
	}
	if !strings.Contains(snd.last(t).text, "Set 2/2") {
		t.Errorf("display = %q", snd.last(t).text)
	}
}

func TestNextSetAutoAdvancesToNextExercise(t *testing.T) {
	e, _, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)

	drive(t, e, "/next_set", "/next_set")
	if sess.Exercise != 2 || sess.Set != 1 {
		t.Errorf("cursor = (%d,%d), want (2,1)", sess.Exercise, sess.Set)
	}
	texts := make([]string, 0, len(snd.msgs))
	for _, m := range snd.msgs {
		texts = append(texts, m.text)
	}
	joined := strings.Join(texts, "\n")
	if !strings.Contains(joined, "Exercise finished!") {
		t.Error("auto-advance must announce the finished exercise")
	}
	if !strings.Contains(snd.last(t).text, "Exercise 2/2: Press") {
		t.Errorf("display = %q", snd.last(t).text)
	}
}

func TestWorkoutCompletion(t *testing.T) {
	e, _, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)

	// Last set of the last exercise, then one more next_set.
	drive(t, e, "/next_exercise", "/next_set")
	if sess.State != session.StateEnd {
		t.Errorf("state = %q, want end", sess.State)
	}
	if !strings.Contains(snd.last(t).text, "Workout complete") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
}

func TestPrevExerciseKeepsSetCursor(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)

	drive(t, e, "/next_set", "/next_exercise")
	if sess.Exercise != 2 || sess.Set != 1 {
		t.Fatalf("cursor = (%d,%d), want (2,1)", sess.Exercise, sess.Set)
	}
	drive(t, e, "/prev_exercise")
	if sess.Exercise != 1 {
		t.Errorf("exercise = %d, want 1", sess.Exercise)
	}
	// Set cursor is not reset by prev_exercise.
	if sess.Set != 1 {
		t.Errorf("set = %d, want 1", sess.Set)
	}
}

func TestUpdateSetHappyPath(t *testing.T) {
	e, st, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)

	drive(t, e, "/update_set")
	if sess.UpdateSetSub != session.UpdateSetTypeSet {
		t.Fatalf("sub = %q", sess.UpdateSetSub)
	}
	drive(t, e, "2", "3", "85")

	if len(st.commits) != 1 {
		t.Fatalf("commits = %d, want 1", len(st.commits))
	}
	got := st.commits[0]
	want := commitCall{userID: 55, programID: 7, day: 0, exercise: 1, set: 2, field: program.FieldWeight, value: 85}
	if got != want {
		t.Errorf("commit = %+v, want %+v", got, want)
	}
	if sess.UpdateSetSub != session.UpdateSetNone || sess.Pending != nil {
		t.Error("update dialog must be closed after commit")
	}
	if !strings.Contains(snd.last(t).text, "Exercise 1/2: Bench") {
		t.Errorf("redisplay = %q", snd.last(t).text)
	}
}

func TestUpdateSetRejectsNegativeValue(t *testing.T) {
	e, st, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)

	drive(t, e, "/update_set", "1", "1", "-5")
	if len(st.commits) != 0 {
		t.Fatal("negative value must not be committed")
	}
	if sess.UpdateSetSub != session.UpdateSetTypeNewValue {
		t.Errorf("sub = %q, want type_new_value", sess.UpdateSetSub)
	}
	if !strings.Contains(snd.last(t).text, "non-negative") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}

	drive(t, e, "12")
	if len(st.commits) != 1 || st.commits[0].field != program.FieldReps || st.commits[0].value != 12 {
		t.Errorf("commits = %+v", st.commits)
	}
}

func TestUpdateSetCancel(t *testing.T) {
	e, st, _ := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)

	drive(t, e, "/update_set", "2", "0")
	if sess.UpdateSetSub != session.UpdateSetNone || sess.Pending != nil {
		t.Error("cancel must clear sub-state and pending update")
	}
	if len(st.commits) != 0 {
		t.Error("cancel must not commit anything")
	}
}

func TestUpdateSetOutOfRangeReprompts(t *testing.T) {
	e, st, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)

	drive(t, e, "/update_set", "9")
	if sess.UpdateSetSub != session.UpdateSetTypeSet {
		t.Errorf("sub = %q, want type_set", sess.UpdateSetSub)
	}
	if !strings.Contains(snd.last(t).text, "between 1 and 2") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
	if len(st.commits) != 0 {
		t.Error("nothing may be committed")
	}
}

func TestUpdateCommitFailureKeepsCursor(t *testing.T) {
	e, st, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)
	st.commitErr = errors.New("db down")

	drive(t, e, "/update_set", "2", "1", "9")
	if sess.State != session.StateStarted {
		t.Errorf("state = %q, want started", sess.State)
	}
	if sess.Exercise != 1 || sess.Set != 1 {
		t.Errorf("cursor = (%d,%d), want (1,1)", sess.Exercise, sess.Set)
	}
	if !strings.Contains(snd.last(t).text, "went wrong") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
}

func TestUpdateExerciseExpression(t *testing.T) {
	e, _, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)

	drive(t, e, "/update_exercise")
	if sess.UpdateExerciseSub != session.UpdateExerciseTypeExpression {
		t.Fatalf("sub = %q", sess.UpdateExerciseSub)
	}
	drive(t, e, "3x8@80")
	if sess.UpdateExerciseSub != session.UpdateExerciseNone {
		t.Errorf("sub = %q, want none", sess.UpdateExerciseSub)
	}
	if !strings.Contains(snd.last(t).text, "not supported yet") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
}

func TestEndMenu(t *testing.T) {
	e, _, snd := newTestEngine(t)
	startWorkout(t, e)
	sess := sessionOf(t, e)
	drive(t, e, "/next_exercise", "/next_exercise")
	if sess.State != session.StateEnd {
		t.Fatalf("state = %q, want end", sess.State)
	}

	drive(t, e, "/stats")
	if !strings.Contains(snd.last(t).text, "not available yet") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
	drive(t, e, "/quit")
	if sess.State != session.StateAuthenticated {
		t.Errorf("state after /quit = %q, want authenticated", sess.State)
	}
	if sess.DayIndex != -1 {
		t.Errorf("day index = %d, want -1", sess.DayIndex)
	}
}

func TestUnknownCommandInState(t *testing.T) {
	e, _, snd := newTestEngine(t)
	login(t, e)
	drive(t, e, "/start_workout")
	sess := sessionOf(t, e)
	if sess.State != session.StateAuthenticated {
		t.Errorf("illegal command changed state to %q", sess.State)
	}
	if !strings.Contains(snd.last(t).text, "Invalid command") {
		t.Errorf("unexpected reply %q", snd.last(t).text)
	}
}

func TestDistinctChatsAreIsolated(t *testing.T) {
	e, _, _ := newTestEngine(t)
	login(t, e)

	otherChat := int64(2002)
	if err := e.HandleMessage(context.Background(), otherChat, "/programs"); err != nil {
		t.Fatal(err)
	}
	other, ok := e.sessions.Peek(otherChat)
	if !ok {
		t.Fatal("no session for second chat")
	}
	if other.State != session.StateDead {
		t.Errorf("second chat state = %q, want dead", other.State)
	}
	if got := sessionOf(t, e).State; got != session.StateAuthenticated {
		t.Errorf("first chat state = %q, want authenticated", got)
	}
}
