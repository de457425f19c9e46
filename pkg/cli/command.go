package cli

import (
	"strconv"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

// Info carries the descriptive half of a command. Commands embed it and
// implement Configure and Execute.
type Info struct {
	CommandName  string
	Summary      string
	CommandGroup string
}

func (i Info) Name() string                          { return i.CommandName }
func (i Info) Description() string                   { return i.Summary }
func (i Info) Group() string                         { return i.CommandGroup }
func (i Info) Validate(_ contracts.CliContext) error { return nil }

// RequireFlags fails with ErrMissingArgument for the first empty value.
// Pairs are flag name followed by its value.
func RequireFlags(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return ErrMissingArgument.WithDetail("argument", "-"+pairs[i])
		}
	}
	return nil
}

// StringFlag is a string flag that remembers whether it was given.
type StringFlag struct {
	value string
	set   bool
}

func (f *StringFlag) String() string { return f.value }

func (f *StringFlag) Set(v string) error {
	f.value, f.set = v, true
	return nil
}

// Ptr is nil unless the flag was given.
func (f *StringFlag) Ptr() *string {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

type BoolFlag struct {
	value bool
	set   bool
}

func (f *BoolFlag) String() string   { return strconv.FormatBool(f.value) }
func (f *BoolFlag) IsBoolFlag() bool { return true }

func (f *BoolFlag) Set(v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	f.value, f.set = b, true
	return nil
}

func (f *BoolFlag) Ptr() *bool {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// FloatFlag accepts a number, or "null" to clear the value.
type FloatFlag struct {
	value *float64
	set   bool
}

func (f *FloatFlag) String() string {
	if f == nil || f.value == nil {
		return ""
	}
	return strconv.FormatFloat(*f.value, 'f', -1, 64)
}

func (f *FloatFlag) Set(v string) error {
	f.set = true
	if v == "null" {
		f.value = nil
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	f.value = &n
	return nil
}

// Value reports the parsed number (nil for "null") and whether the flag was given.
func (f *FloatFlag) Value() (*float64, bool) {
	return f.value, f.set
}
