package cli

import (
	"io"
	"os"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct {
	args   []string
	input  io.Reader
	output io.Writer
}

// NewModule runs one command per application run. It must be registered
// last: commands are collected from every module implementing
// contracts.CliCommandProvider and executed once the others have started.
func NewModule(args []string, input io.Reader, output io.Writer) contracts.AppModule {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}
	return &module{args: args, input: input, output: output}
}

func (m *module) Name() string {
	return contracts.CliModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(
		contracts.CliModuleName,
		func(contracts.DIResolver) (any, error) {
			r := NewRegistry()
			c := New(r)
			if err := c.Register(NewHelpCommand(r)); err != nil {
				return nil, err
			}
			return c, nil
		},
	)
}

func (m *module) Start(ctx contracts.AppContext) error {
	defer ctx.Stop()

	c, err := registry.Resolve[contracts.Cli](ctx.Container(), contracts.CliModuleName)
	if err != nil {
		return err
	}

	for _, mod := range ctx.AppRegistry().All() {
		provider, ok := mod.(contracts.CliCommandProvider)
		if !ok {
			continue
		}
		commands, err := provider.CliCommands(ctx)
		if err != nil {
			return err
		}
		for _, cmd := range commands {
			if err := c.Register(cmd); err != nil {
				return err
			}
		}
	}

	args := m.args
	if len(args) == 0 {
		args = []string{"help"}
	}
	return c.Run(NewContext(ctx, m.input, m.output, args))
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}
