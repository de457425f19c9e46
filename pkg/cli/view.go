package cli

import (
	"fmt"
	"io"

	"github.com/shuldan/underc0de-admin/pkg/errors"
)

// View renders presenter callbacks on the command output. Success callbacks
// print through Printf and Table; error callbacks go through Fail, which
// prints the user message once and makes Result fail.
type View struct {
	out io.Writer
	err error
}

func NewView(out io.Writer) *View {
	return &View{out: out}
}

func (v *View) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(v.out, format, args...)
}

func (v *View) Table(header []string, rows [][]string) {
	if len(rows) == 0 {
		v.Printf("No records\n")
		return
	}
	if err := PrintTable(v.out, header, rows); err != nil {
		v.err = err
	}
}

func (v *View) Fail(err error) {
	v.err = err
	v.Printf("Error: %s\n", errors.Message(err))
}

// Result is the error the command returns: nil, or ErrReported wrapping the
// failure so callers can skip printing it again.
func (v *View) Result() error {
	if v.err == nil {
		return nil
	}
	return ErrReported.WithCause(v.err)
}
