package commands

// Command describes a bot command published to the Telegram command menu.
// Handlers are not attached here: dispatch is owned by the dialog engine,
// which decides per conversation state whether a command is legal.
type Command struct {
	Description string
	Hidden      bool
}
