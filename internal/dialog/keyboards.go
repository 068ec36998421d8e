package dialog

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/liftbot/core/telegram/keyboard"
	"github.com/m3rciful/liftbot/internal/session"
)

// stateKeyboard returns the reply keyboard advertising the commands legal in
// the given state. Free-text states get no keyboard.
func stateKeyboard(st session.State) *tele.ReplyMarkup {
	switch st {
	case session.StateDead:
		return keyboard.ReplyButtonsPaired([]string{cmdStart})
	case session.StateAuthenticated:
		return keyboard.ReplyButtonsPaired([]string{cmdPrograms, cmdDetails, cmdSelectProgram})
	case session.StateReady:
		return keyboard.ReplyButtonsPaired([]string{cmdStartWorkout, cmdCancel})
	case session.StateStarted:
		return keyboard.ReplyButtonsPaired([]string{
			cmdPrevExercise, cmdNextExercise,
			cmdPrevSet, cmdNextSet,
			cmdUpdateSet, cmdUpdateExercise,
		})
	case session.StateEnd:
		return keyboard.ReplyButtonsPaired([]string{cmdQuit, cmdStats, cmdSuggestions})
	}
	return nil
}
