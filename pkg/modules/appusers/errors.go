package appusers

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newAppUsersCode = errors.WithPrefix("APP_USERS")

var ErrInvalidSubscription = newAppUsersCode().New("unknown subscription {{.subscription}}, expected active, trial, expired, cancelled or none")
