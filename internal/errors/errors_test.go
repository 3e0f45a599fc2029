package errors

import (
	stderrors "errors"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New("E102")
	if err.Code != "E102" {
		t.Errorf("expected code E102, got %s", err.Code)
	}
	if err.Category != CategoryUsage {
		t.Errorf("expected usage category, got %s", err.Category)
	}
	if err.Error() != "E102: duplicate key in reconciliation pass" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" || err.Message != "unknown error" {
		t.Errorf("unexpected unknown-code error: %+v", err)
	}
}

func TestNewfAppendsContext(t *testing.T) {
	err := Newf("E102", "key %q", "user-7")
	want := `E102: duplicate key in reconciliation pass: key "user-7"`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestIsMatchesByCode(t *testing.T) {
	a := Newf("E201", "item %d", 3)
	if !stderrors.Is(a, New("E201")) {
		t.Errorf("errors with the same code must match")
	}
	if stderrors.Is(a, New("E102")) {
		t.Errorf("errors with different codes must not match")
	}
}

func TestWrapUnwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := New("E103").Wrap(inner)
	if !stderrors.Is(err, inner) {
		t.Errorf("wrapped error must be reachable via errors.Is")
	}
}

func TestTemplateLookup(t *testing.T) {
	for _, code := range []string{"E101", "E102", "E103", "E105", "E201", "E202"} {
		if _, ok := Template(code); !ok {
			t.Errorf("%s must be registered", code)
		}
	}
	if _, ok := Template("E000"); ok {
		t.Errorf("E000 must not be registered")
	}
}
