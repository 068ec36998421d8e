// Package session holds the per-chat conversational state: the primary
// finite-state-machine position, the guided-dialog sub-states, the selected
// program snapshot and the workout cursor.
package session

import "github.com/m3rciful/liftbot/internal/program"

// State is the primary conversation phase.
type State string

const (
	// StateDead is the initial state of every newly observed chat.
	StateDead State = "dead"
	// StateLogin is the username/password dialog.
	StateLogin State = "login"
	// StateAuthenticated is the main menu after a successful login.
	StateAuthenticated State = "authenticated"
	// StateTypeProgram awaits a program identifier.
	StateTypeProgram State = "type_program"
	// StateTypeDay awaits a 1-based day ordinal.
	StateTypeDay State = "type_day"
	// StateReady has program and day selected, workout not started.
	StateReady State = "ready"
	// StateStarted is the in-workout navigation and update phase.
	StateStarted State = "started"
	// StateEnd is reached after the last set of the last exercise.
	StateEnd State = "end"
)

// LoginSub tracks progress through the login dialog.
type LoginSub string

const (
	LoginNone          LoginSub = "none"
	LoginUsername      LoginSub = "username"
	LoginPassword      LoginSub = "password"
	LoginAuthenticated LoginSub = "authenticated"
)

// UpdateSetSub tracks progress through the three-step set edit dialog.
type UpdateSetSub string

const (
	UpdateSetNone         UpdateSetSub = "none"
	UpdateSetTypeSet      UpdateSetSub = "type_set"
	UpdateSetTypeWhat     UpdateSetSub = "type_what"
	UpdateSetTypeNewValue UpdateSetSub = "type_new_value"
)

// UpdateExerciseSub tracks the single-step expression edit dialog.
type UpdateExerciseSub string

const (
	UpdateExerciseNone           UpdateExerciseSub = "none"
	UpdateExerciseTypeExpression UpdateExerciseSub = "type_expression"
)

// Session is the complete conversational context of one chat identity.
// It is exclusively owned by the message-processing flow of that chat;
// the transport delivers one message at a time per chat.
type Session struct {
	ChatID int64

	State             State
	LoginSub          LoginSub
	UpdateSetSub      UpdateSetSub
	UpdateExerciseSub UpdateExerciseSub

	// UserID is the persistent user identifier bound after login; 0 means
	// no user is bound. LoginName carries the username between the two
	// login turns. Attempts counts failed password attempts.
	UserID    int64
	LoginName string
	Attempts  int

	// Program is the snapshot loaded on selection; nil until then.
	// DayIndex is 0-based; -1 until a day is chosen. Exercise and Set are
	// the 1-based workout cursor.
	Program  *program.Program
	DayIndex int
	Exercise int
	Set      int

	Pending *program.PendingUpdate
}

// New returns a fresh session in the dead state.
func New(chatID int64) *Session {
	return &Session{
		ChatID:            chatID,
		State:             StateDead,
		LoginSub:          LoginNone,
		UpdateSetSub:      UpdateSetNone,
		UpdateExerciseSub: UpdateExerciseNone,
		DayIndex:          -1,
	}
}

// SubDialogActive reports whether any guided sub-dialog is in progress.
func (s *Session) SubDialogActive() bool {
	return s.LoginSub != LoginNone && s.LoginSub != LoginAuthenticated ||
		s.UpdateSetSub != UpdateSetNone ||
		s.UpdateExerciseSub != UpdateExerciseNone
}

// ClearSelection drops the selected program and day together, so the pair
// is never left half set.
func (s *Session) ClearSelection() {
	s.Program = nil
	s.DayIndex = -1
}

// ClearDay keeps the program but drops the day selection.
func (s *Session) ClearDay() {
	s.DayIndex = -1
}

// ClearUpdates resets both update sub-dialogs and the pending builder.
func (s *Session) ClearUpdates() {
	s.UpdateSetSub = UpdateSetNone
	s.UpdateExerciseSub = UpdateExerciseNone
	s.Pending = nil
}

// Deregister resets the session to its initial dead shape after exhausted
// login attempts.
func (s *Session) Deregister() {
	s.State = StateDead
	s.LoginSub = LoginNone
	s.UserID = 0
	s.LoginName = ""
	s.Attempts = 0
	s.ClearSelection()
	s.ClearUpdates()
}

// CurrentDay returns the selected day of the selected program, or nil when
// either selection is missing.
func (s *Session) CurrentDay() *program.DayProgram {
	if s.Program == nil || s.DayIndex < 0 {
		return nil
	}
	day, err := s.Program.Day(s.DayIndex)
	if err != nil {
		return nil
	}
	return day
}
