package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestWithPrefix(t *testing.T) {
	gen := WithPrefix("API")

	for _, want := range []Code{"API_0001", "API_0002", "API_0003"} {
		if got := gen(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
}

func TestError_Error(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	testCases := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"plain", Code("T_1").New("simple error"), "T_1: simple error"},
		{"template", Code("T_1").New("hello {{.name}}").WithDetail("name", "world"), "T_1: hello world"},
		{"invalid template", Code("T_1").New("hello {{.name"), "T_1: hello {{.name"},
		{"cause", Code("T_1").New("wrapped").WithCause(cause), "T_1: wrapped (caused by: dial tcp: refused)"},
		{"empty", Code("T_1").New(""), ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestError_WithDetailDoesNotMutateSentinel(t *testing.T) {
	sentinel := Code("T_2").New("key {{.key}}")

	derived := sentinel.WithDetail("key", "token")

	if len(sentinel.Details) != 0 {
		t.Errorf("sentinel details mutated: %v", sentinel.Details)
	}
	if derived.Text() != "key token" {
		t.Errorf("expected rendered text, got %q", derived.Text())
	}
	if sentinel.WithCause(errors.New("x")) == sentinel {
		t.Error("WithCause should return a copy")
	}
}

var (
	errMissingKey = Code("T_NOT_FOUND").New("key {{.key}} not registered")
	errDuplicate  = Code("T_CONFLICT").New("key {{.key}} registered twice")
	errRejected   = Code("T_REJECTED").New("request rejected")
	errInternal   = Code("T_INTERNAL").New("internal error")
)

func TestError_IsMatchesByCode(t *testing.T) {
	derived := errMissingKey.WithDetail("key", "httpClient").WithCause(errors.New("boom"))

	if !Is(derived, errMissingKey) {
		t.Error("derived error should match its sentinel")
	}
	if Is(derived, errDuplicate) {
		t.Error("derived error should not match a different code")
	}
	if GetErrorCode(derived) != errMissingKey.Code {
		t.Errorf("unexpected code %s", GetErrorCode(derived))
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("cause error")
	level1 := errInternal.WithCause(cause)
	level2 := errRejected.WithCause(level1)

	if !Is(level2, cause) {
		t.Error("should find the root cause through the chain")
	}
	if !errors.Is(Unwrap(level2), level1) {
		t.Error("should unwrap to the immediate cause")
	}
	if Code("T_3").New("x").Unwrap() != nil {
		t.Error("error without cause should unwrap to nil")
	}
}

func TestError_Stack(t *testing.T) {
	err := Code("T_4").New("stack test")

	if !strings.Contains(err.Stack, "TestError_Stack") {
		t.Error("expected stack to contain TestError_Stack")
	}
}

type serverMessage string

func (s serverMessage) Error() string       { return "server: " + string(s) }
func (s serverMessage) UserMessage() string { return string(s) }

func TestMessage(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"user messenger", serverMessage("Email ya registrado"), "Email ya registrado"},
		{"wrapped user messenger", errRejected.WithCause(serverMessage("Sin permisos")), "Sin permisos"},
		{"coded", Code("T_5").New("key {{.key}} missing").WithDetail("key", "user"), "key user missing"},
		{"innermost coded", Code("T_6").New("failed to start module cli").WithCause(
			Code("T_7").New("no signed-in user")), "no signed-in user"},
		{"coded with plain cause", Code("T_8").New("cannot read logo").WithCause(
			errors.New("open logo.png: no such file")), "cannot read logo: open logo.png: no such file"},
		{"plain", errors.New("plain"), "plain"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Message(tc.err); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestUtils_NilHandling(t *testing.T) {
	if Is(nil, nil) {
		t.Error("Is should return false for nil errors")
	}
	var target *Error
	if As(nil, &target) {
		t.Error("As should handle nil errors")
	}
	if Join(nil, nil) != nil {
		t.Error("Join of nils should be nil")
	}
}
