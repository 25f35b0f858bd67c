package domain

import (
	"errors"
	"fmt"
)

// ErrPrecondition is returned when movement is requested from an unknown position.
var ErrPrecondition = errors.New("precondition failed")

// ErrParameter is returned for invalid curve or canvas parameters.
var ErrParameter = errors.New("invalid parameter")

// ErrRemoteCommand matches every RemoteCommandError via errors.Is.
var ErrRemoteCommand = errors.New("remote command failed")

// ErrIdentityNotFound is returned when no identity is stored for a bot.
var ErrIdentityNotFound = errors.New("identity not found")

// ErrSessionFinished is returned when a finished draw session receives a command.
var ErrSessionFinished = errors.New("session finished")

// RemoteCommandError reports a failed agent command: transport failure,
// non-success status or an unparseable response.
type RemoteCommandError struct {
	Command string
	Status  int // HTTP status, 0 if no response was received
	Body    string
	Err     error
}

func (e *RemoteCommandError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("%s: (%d) %v", e.Command, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s: (%d) %s", e.Command, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: (%d) unknown error", e.Command, e.Status)
}

func (e *RemoteCommandError) Unwrap() error {
	return e.Err
}

// Is makes every RemoteCommandError match ErrRemoteCommand.
func (e *RemoteCommandError) Is(target error) bool {
	return target == ErrRemoteCommand
}
