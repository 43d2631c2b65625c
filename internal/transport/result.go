package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when no companion link is up.
	ErrNotConnected = errors.New("companion not connected")

	// ErrBusy is returned while a previous message is still being sent.
	ErrBusy = errors.New("outbox busy")
)

// Result explains why a message was dropped or not delivered.
type Result int

const (
	ResultOK Result = iota
	ResultSendTimeout
	ResultSendRejected
	ResultNotConnected
	ResultAppNotRunning
	ResultInvalidArgs
	ResultBusy
	ResultBufferOverflow
	ResultAlreadyReleased
	ResultCallbackRegistered
	ResultCallbackNotRegistered
	ResultOutOfMemory
	ResultClosed
	ResultInternalError
)

var resultNames = map[Result]string{
	ResultOK:                    "OK",
	ResultSendTimeout:           "Send timeout",
	ResultSendRejected:          "Send rejected",
	ResultNotConnected:          "Not connected",
	ResultAppNotRunning:         "App not running",
	ResultInvalidArgs:           "Invalid args",
	ResultBusy:                  "Busy",
	ResultBufferOverflow:        "Buffer overflow",
	ResultAlreadyReleased:       "Already released",
	ResultCallbackRegistered:    "Callback registered",
	ResultCallbackNotRegistered: "Callback not registered",
	ResultOutOfMemory:           "Out of memory",
	ResultClosed:                "Closed",
	ResultInternalError:         "Internal error",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Error wraps a non-OK result as an error.
type Error struct {
	Result Result
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %v", e.Result, int(e.Result), e.Err)
	}
	return fmt.Sprintf("%s (%d)", e.Result, int(e.Result))
}

func (e *Error) Unwrap() error {
	return e.Err
}
