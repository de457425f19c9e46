package session

import (
	"context"
	"flag"
	"fmt"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/navigation"
)

type sessionCommand struct {
	manager *Manager
}

func (c *sessionCommand) Group() string                         { return contracts.SessionCliGroup }
func (c *sessionCommand) Configure(_ *flag.FlagSet)             {}
func (c *sessionCommand) Validate(_ contracts.CliContext) error { return nil }

type logoutCommand struct {
	sessionCommand
}

func (c *logoutCommand) Name() string        { return "logout" }
func (c *logoutCommand) Description() string { return "Close the current session" }

func (c *logoutCommand) Execute(ctx contracts.CliContext) error {
	user, ok := c.manager.User()
	if err := c.manager.Logout(ctx.Ctx().Ctx()); err != nil {
		return err
	}
	if ok {
		_, _ = fmt.Fprintf(ctx.Output(), "Bye, %s\n", user.Name)
	}
	return nil
}

type whoamiCommand struct {
	sessionCommand
}

func (c *whoamiCommand) Name() string        { return "whoami" }
func (c *whoamiCommand) Description() string { return "Show the signed-in user" }

func (c *whoamiCommand) Execute(ctx contracts.CliContext) error {
	user, ok := c.manager.User()
	if !ok {
		return ErrNotAuthenticated
	}

	out := ctx.Output()
	_, _ = fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
	_, _ = fmt.Fprintf(out, "id:    %s\n", user.ID)
	_, _ = fmt.Fprintf(out, "role:  %s\n", user.Role)
	if user.LastLogin != "" {
		_, _ = fmt.Fprintf(out, "login: %s\n", user.LastLogin)
	}
	return nil
}

// watchCommand keeps the session open until it is ended from elsewhere:
// another login on the shared store, a logout, or an expired token.
type watchCommand struct {
	manager *Manager
	bus     contracts.Bus
}

func (c *watchCommand) Name() string        { return "session:watch" }
func (c *watchCommand) Description() string { return "Wait until the session is closed elsewhere" }
func (c *watchCommand) Group() string       { return contracts.SessionCliGroup }

func (c *watchCommand) Configure(_ *flag.FlagSet) {}

func (c *watchCommand) Validate(_ contracts.CliContext) error {
	if !c.manager.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func (c *watchCommand) Execute(ctx contracts.CliContext) error {
	ended := make(chan navigation.Requested, 1)
	err := c.bus.Subscribe((*navigation.Requested)(nil), func(_ context.Context, e navigation.Requested) error {
		if e.Path != loginRoute {
			return nil
		}
		select {
		case ended <- e:
		default:
		}
		return nil
	})
	if err != nil {
		return err
	}

	user, _ := c.manager.User()
	_, _ = fmt.Fprintf(ctx.Output(), "Watching session of %s, press Ctrl-C to stop\n", user.Name)

	select {
	case <-ctx.Ctx().Ctx().Done():
		return nil
	case <-ended:
		_, _ = fmt.Fprintln(ctx.Output(), "Session ended")
		return nil
	}
}
