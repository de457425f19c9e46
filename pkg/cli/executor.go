package cli

import "github.com/shuldan/underc0de-admin/pkg/contracts"

type cmdExecutor struct {
	parser *cmdParser
}

func newExecutor(parser *cmdParser) *cmdExecutor {
	return &cmdExecutor{
		parser: parser,
	}
}

func (e *cmdExecutor) Execute(commandCtx contracts.CliContext) error {
	done := commandCtx.Ctx().Ctx().Done()

	select {
	case <-done:
		return commandCtx.Ctx().Ctx().Err()
	default:
	}

	if len(commandCtx.Args()) == 0 {
		return ErrNoCommandSpecified
	}

	parsed, err := e.parser.Parse(commandCtx.Args(), commandCtx.Output())
	if err != nil {
		return err
	}

	parsedCtx := withArgs(commandCtx, parsed.Args)

	if err = parsed.Command.Validate(parsedCtx); err != nil {
		return ErrCommandValidation.WithDetail("command", parsed.Command.Name()).WithCause(err)
	}

	select {
	case <-done:
		return commandCtx.Ctx().Ctx().Err()
	default:
	}

	if err = parsed.Command.Execute(parsedCtx); err != nil {
		return ErrCommandExecution.WithDetail("command", parsed.Command.Name()).WithCause(err)
	}

	return nil
}
