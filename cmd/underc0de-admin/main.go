package main

import (
	"fmt"
	"os"

	"github.com/shuldan/underc0de-admin/pkg/bootstrap"
	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/errors"
)

var version = "dev"

func main() {
	a, err := bootstrap.New("underc0de-admin", version, "UNDERC0DE_").
		WithLogger().
		WithEventBus().
		WithNavigation(os.Stderr).
		WithMetrics().
		WithDatabase().
		WithSession().
		WithHTTPClient().
		WithBackoffice().
		WithCli(os.Args[1:], os.Stdin, os.Stdout).
		CreateApp()
	if err != nil {
		exit(err)
	}

	if err := a.Run(); err != nil {
		exit(err)
	}
}

func exit(err error) {
	if !errors.Is(err, cli.ErrReported) {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", errors.Message(err))
	}
	os.Exit(1)
}
