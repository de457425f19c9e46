package cli

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newCliCode = errors.WithPrefix("CLI")

var (
	ErrNoCommandSpecified  = newCliCode().New("no command specified")
	ErrUnknownCommand      = newCliCode().New("unknown command {{.command}}")
	ErrIncompleteCommand   = newCliCode().New("{{.command}} needs an action: {{.actions}}")
	ErrCommandValidation   = newCliCode().New("command validation failed for {{.command}}")
	ErrCommandExecution    = newCliCode().New("command execution failed for {{.command}}")
	ErrCommandRegistration = newCliCode().New("command registration failed for {{.command}}")
	ErrHelpCommandNotFound = newCliCode().New("help command not found for {{.command}}")
	ErrFlagParse           = newCliCode().New("flag parsing failed for command {{.command}}")
	ErrMissingArgument     = newCliCode().New("missing required {{.argument}}")
	ErrReported            = newCliCode().New("failure already shown to the user")
)
