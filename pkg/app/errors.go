package app

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newAppCode = errors.WithPrefix("APP")
var newModulesCode = errors.WithPrefix("APP_MODULES")

var (
	ErrModuleRegister = newAppCode().New("failed to register module {{.module}}")
	ErrModuleStart    = newAppCode().New("failed to start module {{.module}}")
	ErrRegistryBuild  = newAppCode().New("failed to build dependency registry")
	ErrAppRun         = newAppCode().New("application run failed with reason: {{.reason}}")
	ErrAppStop        = newAppCode().New("application stop failed with reason: {{.reason}}")

	ErrModuleStop      = newModulesCode().New("failed to stop module {{.module}}")
	ErrDuplicateModule = newModulesCode().New("module {{.module}} is already registered")
)
