package script

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Error defines a build error with source context.
type Error struct {
	Pos syntax.Position
	Msg string
}

// newError creates a new error for the script position of the
// builtin call currently executing on thread.
func newError(thread *starlark.Thread, msg string) *Error {
	return &Error{
		Pos: callerPos(thread),
		Msg: msg,
	}
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// callerPos returns the position of the script statement which called
// the currently executing builtin.
func callerPos(thread *starlark.Thread) syntax.Position {
	if thread.CallStackDepth() < 2 {
		return syntax.Position{}
	}
	return thread.CallFrame(1).Pos
}
