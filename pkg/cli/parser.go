package cli

import (
	"flag"
	"io"
	"strings"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type parsedCommand struct {
	Name    string
	Args    []string
	Flags   *flag.FlagSet
	Command contracts.CliCommand
}

type cmdParser struct {
	registry contracts.CliRegistry
}

func newParser(registry contracts.CliRegistry) *cmdParser {
	return &cmdParser{
		registry: registry,
	}
}

func (p *cmdParser) Parse(args []string, output io.Writer) (*parsedCommand, error) {
	if len(args) == 0 {
		return nil, ErrNoCommandSpecified
	}

	commandName := args[0]

	command, exists := p.registry.Get(commandName)
	if !exists {
		return nil, p.unknown(commandName)
	}

	flagSet := flag.NewFlagSet(commandName, flag.ContinueOnError)
	flagSet.SetOutput(output)

	command.Configure(flagSet)

	positional, err := parseInterleaved(flagSet, args[1:])
	if err != nil {
		return nil, ErrFlagParse.WithDetail("command", commandName).WithCause(err)
	}

	return &parsedCommand{
		Name:    commandName,
		Args:    positional,
		Flags:   flagSet,
		Command: command,
	}, nil
}

// unknown names the actions available when name is a bare namespace such
// as "users".
func (p *cmdParser) unknown(name string) error {
	actions := p.registry.Namespace(name)
	if len(actions) == 0 {
		return ErrUnknownCommand.WithDetail("command", name)
	}

	names := make([]string, 0, len(actions))
	for _, action := range actions {
		names = append(names, action.Name())
	}
	return ErrIncompleteCommand.WithDetail("command", name).WithDetail("actions", strings.Join(names, ", "))
}

// parseInterleaved accepts flags after positional arguments, so that
// "help login -command x" parses like "help -command x login". Everything
// after a "--" terminator is positional.
func parseInterleaved(flagSet *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := flagSet.Parse(args); err != nil {
			return nil, err
		}

		rest := flagSet.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}

		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
