package errors

import (
	"bytes"
	"fmt"
	"maps"
	"runtime"
	"text/template"
	"time"
)

type Code string

func (c Code) New(msg string) *Error {
	return &Error{
		Code:      c,
		Message:   msg,
		Details:   make(map[string]any),
		Stack:     getStack(),
		Timestamp: time.Now(),
	}
}

// WithPrefix returns a generator of sequential codes, e.g. HTTP_CLIENT_0001.
func WithPrefix(prefix string) func() Code {
	counter := int64(0)
	return func() Code {
		counter++
		return Code(fmt.Sprintf("%s_%04d", prefix, counter))
	}
}

type Error struct {
	Code      Code           `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Cause     error          `json:"-"`
	Stack     string         `json:"-"`
	Timestamp time.Time      `json:"timestamp"`
}

func (e *Error) Error() string {
	msg := e.Text()
	if msg == "" {
		return ""
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, msg, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Text renders the message template without the code prefix and cause.
func (e *Error) Text() string {
	t, err := template.New("error").Option("missingkey=zero").Parse(e.Message)
	if err != nil {
		return e.Message
	}

	var output bytes.Buffer
	if err = t.Execute(&output, e.Details); err != nil {
		return e.Message
	}

	return output.String()
}

// WithCause returns a copy of e carrying err as its cause. Package-level
// sentinels stay untouched.
func (e *Error) WithCause(err error) *Error {
	c := e.clone()
	c.Cause = err
	return c
}

// WithDetail returns a copy of e with key set in its template details.
func (e *Error) WithDetail(key string, value any) *Error {
	c := e.clone()
	c.Details[key] = value
	return c
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code, so copies produced by
// WithDetail and WithCause still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) clone() *Error {
	c := *e
	c.Details = make(map[string]any, len(e.Details))
	maps.Copy(c.Details, e.Details)
	c.Timestamp = time.Now()
	return &c
}

func getStack() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
