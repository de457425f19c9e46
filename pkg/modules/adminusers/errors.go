package adminusers

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newAdminUsersCode = errors.WithPrefix("ADMIN_USERS")

var ErrInvalidRole = newAdminUsersCode().New("unknown role {{.role}}, expected admin or editor")
