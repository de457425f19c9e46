package cli

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type cmdContext struct {
	appCtx contracts.AppContext
	input  io.Reader
	output io.Writer
	args   []string
	lines  *lineReader
}

// lineReader buffers the command input once per run, so that successive
// prompts on the same input do not lose what an earlier one read ahead.
type lineReader struct {
	once   sync.Once
	source io.Reader
	reader *bufio.Reader
}

func (l *lineReader) get() *bufio.Reader {
	l.once.Do(func() {
		source := l.source
		if source == nil {
			source = strings.NewReader("")
		}
		l.reader = bufio.NewReader(source)
	})
	return l.reader
}

func NewContext(
	appCtx contracts.AppContext,
	input io.Reader,
	output io.Writer,
	args []string,
) contracts.CliContext {
	return &cmdContext{
		appCtx: appCtx,
		input:  input,
		output: output,
		args:   copyArgs(args),
		lines:  &lineReader{source: input},
	}
}

// withArgs returns ctx carrying args instead, sharing its buffered input.
func withArgs(ctx contracts.CliContext, args []string) contracts.CliContext {
	c, ok := ctx.(*cmdContext)
	if !ok {
		return NewContext(ctx.Ctx(), ctx.Input(), ctx.Output(), args)
	}

	return &cmdContext{
		appCtx: c.appCtx,
		input:  c.input,
		output: c.output,
		args:   copyArgs(args),
		lines:  c.lines,
	}
}

func (c *cmdContext) Ctx() contracts.AppContext {
	return c.appCtx
}

func (c *cmdContext) Input() io.Reader {
	return c.input
}

func (c *cmdContext) Output() io.Writer {
	return c.output
}

func (c *cmdContext) Args() []string {
	return copyArgs(c.args)
}

func (c *cmdContext) bufferedInput() *bufio.Reader {
	return c.lines.get()
}

func copyArgs(args []string) []string {
	argsCopy := make([]string, len(args))
	copy(argsCopy, args)

	return argsCopy
}
