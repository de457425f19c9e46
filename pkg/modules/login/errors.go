package login

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newLoginCode = errors.WithPrefix("LOGIN")

var ErrEmptyToken = newLoginCode().New("the API returned an empty token")
