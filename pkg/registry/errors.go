package registry

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newRegistryCode = errors.WithPrefix("REGISTRY")

var (
	ErrUndefinedDependency = newRegistryCode().New("dependency is undefined: {{.key}}")
	ErrNotFound            = newRegistryCode().New("dependency not found: {{.key}}")
	ErrDuplicateKey        = newRegistryCode().New("dependency already registered: {{.key}}")
	ErrCircularDependency  = newRegistryCode().New("circular dependency detected for key {{.key}}")
	ErrFactoryFailed       = newRegistryCode().New("factory for {{.key}} failed")
	ErrRegistryFrozen      = newRegistryCode().New("registry is built, cannot register {{.key}}")
	ErrTypeMismatch        = newRegistryCode().New("dependency {{.key}} is {{.actual}}, expected {{.expected}}")
)
