package session

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newSessionCode = errors.WithPrefix("SESSION")

var (
	ErrNotAuthenticated = newSessionCode().New("no active session")
	ErrCorruptUser      = newSessionCode().New("stored user record is not valid JSON")
	ErrStoreClosed      = newSessionCode().New("session store is closed")
	ErrStoreRead        = newSessionCode().New("cannot read session key {{.key}}")
	ErrStoreWrite       = newSessionCode().New("cannot write session key {{.key}}")
	ErrUnknownDriver    = newSessionCode().New("unknown session driver {{.driver}}")
)
