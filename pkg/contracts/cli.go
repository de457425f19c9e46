package contracts

import (
	"flag"
	"io"
)

const (
	SystemCliGroup   = "system"
	SessionCliGroup  = "session"
	DatabaseCliGroup = "database"
	BackofficeGroup  = "backoffice"
)

type CliContext interface {
	Ctx() AppContext
	Input() io.Reader
	Output() io.Writer
	Args() []string
}

type CliCommand interface {
	Name() string
	Description() string
	Group() string
	Configure(flags *flag.FlagSet)
	Validate(ctx CliContext) error
	Execute(ctx CliContext) error
}

// CliGroup is a help section: a group name and its commands sorted by name.
type CliGroup struct {
	Name     string
	Commands []CliCommand
}

type CliRegistry interface {
	Register(command CliCommand) error
	Get(name string) (CliCommand, bool)
	Namespace(namespace string) []CliCommand
	Groups() []CliGroup
}

type Cli interface {
	Register(cmd CliCommand) error
	Run(ctx CliContext) error
}

type CliCommandProvider interface {
	CliCommands(ctx AppContext) ([]CliCommand, error)
}
