package errors

import "errors"

// UserMessenger is implemented by errors carrying text meant for the person
// at the terminal, typically the message the API sent back.
type UserMessenger interface {
	UserMessage() string
}

// Message returns what a view prints for err. A UserMessenger anywhere in the
// chain wins. Otherwise the innermost coded error is rendered without its
// code, followed by its first uncoded cause.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var um UserMessenger
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	var e *Error
	if !As(err, &e) {
		return err.Error()
	}
	for {
		next, ok := e.Cause.(*Error)
		if !ok {
			break
		}
		e = next
	}
	if e.Cause != nil {
		return e.Text() + ": " + e.Cause.Error()
	}
	return e.Text()
}
