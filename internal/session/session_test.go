package session

import (
	"testing"

	"github.com/m3rciful/liftbot/internal/program"
)

func TestStoreGetCreatesDeadSession(t *testing.T) {
	s := NewStore()
	sess := s.Get(42)
	if sess.ChatID != 42 {
		t.Errorf("chat id = %d, want 42", sess.ChatID)
	}
	if sess.State != StateDead {
		t.Errorf("initial state = %q, want %q", sess.State, StateDead)
	}
	if sess.DayIndex != -1 {
		t.Errorf("initial day index = %d, want -1", sess.DayIndex)
	}
	if s.Get(42) != sess {
		t.Error("second Get must return the same session")
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestStorePeekAndRemove(t *testing.T) {
	s := NewStore()
	if _, ok := s.Peek(1); ok {
		t.Error("Peek must not create a session")
	}
	s.Get(1)
	if _, ok := s.Peek(1); !ok {
		t.Error("Peek must find an existing session")
	}
	s.Remove(1)
	if _, ok := s.Peek(1); ok {
		t.Error("Remove must delete the session")
	}
}

func TestDeregisterResets(t *testing.T) {
	sess := New(7)
	sess.State = StateLogin
	sess.LoginSub = LoginUsername
	sess.LoginName = "alice"
	sess.Attempts = 3
	sess.UserID = 99
	sess.Program = &program.Program{ID: 1}
	sess.DayIndex = 0
	sess.UpdateSetSub = UpdateSetTypeWhat
	sess.Pending = &program.PendingUpdate{ChatID: 7}

	sess.Deregister()

	if sess.State != StateDead || sess.LoginSub != LoginNone {
		t.Errorf("state after deregister = %q/%q", sess.State, sess.LoginSub)
	}
	if sess.UserID != 0 || sess.LoginName != "" || sess.Attempts != 0 {
		t.Error("identity fields must be cleared")
	}
	if sess.Program != nil || sess.DayIndex != -1 {
		t.Error("selection must be cleared")
	}
	if sess.UpdateSetSub != UpdateSetNone || sess.Pending != nil {
		t.Error("update dialog must be cleared")
	}
}

func TestSubDialogActive(t *testing.T) {
	sess := New(1)
	if sess.SubDialogActive() {
		t.Error("fresh session must have no active sub-dialog")
	}
	sess.LoginSub = LoginUsername
	if !sess.SubDialogActive() {
		t.Error("login sub-dialog must count as active")
	}
	sess.LoginSub = LoginAuthenticated
	if sess.SubDialogActive() {
		t.Error("authenticated login sub-state is not an active dialog")
	}
	sess.UpdateSetSub = UpdateSetTypeNewValue
	if !sess.SubDialogActive() {
		t.Error("update-set sub-dialog must count as active")
	}
	sess.UpdateSetSub = UpdateSetNone
	sess.UpdateExerciseSub = UpdateExerciseTypeExpression
	if !sess.SubDialogActive() {
		t.Error("update-exercise sub-dialog must count as active")
	}
}

func TestCurrentDay(t *testing.T) {
	sess := New(1)
	if sess.CurrentDay() != nil {
		t.Error("no program selected, current day must be nil")
	}
	sess.Program = &program.Program{
		Days: []program.DayProgram{{DayNumber: 1, Name: "Push"}},
	}
	if sess.CurrentDay() != nil {
		t.Error("no day selected, current day must be nil")
	}
	sess.DayIndex = 0
	day := sess.CurrentDay()
	if day == nil || day.Name != "Push" {
		t.Errorf("current day = %+v, want Push", day)
	}
	sess.DayIndex = 5
	if sess.CurrentDay() != nil {
		t.Error("out-of-range day index must yield nil")
	}
}
