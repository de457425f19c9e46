package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

// Prompter reads answers from the command input. Secrets are read without
// echo when the input is a terminal.
type Prompter struct {
	input  io.Reader
	output io.Writer
	reader *bufio.Reader
}

// NewPrompter reads through the context's shared input buffer when it has
// one, so several prompters on one run see consecutive lines.
func NewPrompter(ctx contracts.CliContext) *Prompter {
	var reader *bufio.Reader
	if buffered, ok := ctx.(interface{ bufferedInput() *bufio.Reader }); ok {
		reader = buffered.bufferedInput()
	} else {
		reader = bufio.NewReader(ctx.Input())
	}

	return &Prompter{
		input:  ctx.Input(),
		output: ctx.Output(),
		reader: reader,
	}
}

func (p *Prompter) Line(label string) (string, error) {
	_, _ = fmt.Fprintf(p.output, "%s: ", label)
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) Secret(label string) (string, error) {
	f, ok := p.input.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.Line(label)
	}

	_, _ = fmt.Fprintf(p.output, "%s: ", label)
	secret, err := term.ReadPassword(int(f.Fd()))
	_, _ = fmt.Fprintln(p.output)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// Require returns value, or prompts for it when empty.
func (p *Prompter) Require(value, label string, secret bool) (string, error) {
	if value != "" {
		return value, nil
	}
	read := p.Line
	if secret {
		read = p.Secret
	}
	value, err := read(label)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", ErrMissingArgument.WithDetail("argument", label)
	}
	return value, nil
}
