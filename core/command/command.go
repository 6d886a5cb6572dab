// Package command defines all mutating herd operations as a closed set
// of command values. Commands are dispatched through an explicit type
// switch in the application layer, keeping the operation set
// exhaustively checkable.
package command

// Command is the base interface for all commands.
type Command interface {
	// CommandName returns the name of the command for logging/debugging
	CommandName() string
}
