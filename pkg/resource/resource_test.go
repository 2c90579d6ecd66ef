package resource

import (
	"errors"
	"strings"
	"testing"
)

func TestSuccess(t *testing.T) {
	o := Success("cat", Content("meow"))
	if !o.OK() {
		t.Fatal("Success outcome should be OK")
	}
	if o.Kind() != "" {
		t.Errorf("Kind() = %q, want empty", o.Kind())
	}
	if o.Content.String() != "meow" {
		t.Errorf("Content = %q, want meow", o.Content)
	}
}

func TestFailure(t *testing.T) {
	t.Run("classified error is kept", func(t *testing.T) {
		err := &Error{Kind: KindNotFound, ID: "tokyo", Message: "missing"}
		o := Failure("tokyo", err)
		if o.OK() {
			t.Fatal("Failure outcome should not be OK")
		}
		if o.Err != err {
			t.Errorf("Err = %v, want original error", o.Err)
		}
		if o.Kind() != KindNotFound {
			t.Errorf("Kind() = %q, want %q", o.Kind(), KindNotFound)
		}
	})

	t.Run("plain error becomes read failure", func(t *testing.T) {
		cause := errors.New("connection reset")
		o := Failure("cat", cause)
		if o.Kind() != KindReadFailure {
			t.Errorf("Kind() = %q, want %q", o.Kind(), KindReadFailure)
		}
		if !errors.Is(o.Err, cause) {
			t.Error("classified error should wrap the cause")
		}
	})

	t.Run("nil error still fails", func(t *testing.T) {
		o := Failure("cat", nil)
		if o.OK() {
			t.Fatal("Failure(nil) must not be OK")
		}
	})
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name  string
		id    ID
		valid bool
	}{
		{"simple", "cat", true},
		{"dotted", "report.v2", true},
		{"unicode", "東京", true},
		{"spaces", "my file", true},
		{"empty", "", false},
		{"dot", ".", false},
		{"dotdot", "..", false},
		{"slash", "a/b", false},
		{"traversal", "../etc/passwd", false},
		{"backslash", `a\b`, false},
		{"nul", "a\x00b", false},
		{"newline", "a\nb", false},
		{"invalid utf8", "a\xffb", false},
		{"too long", ID(strings.Repeat("a", MaxIDLength+1)), false},
		{"max length", ID(strings.Repeat("a", MaxIDLength)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.valid && err != nil {
				t.Errorf("ValidateID(%q) = %v, want nil", tt.id, err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("ValidateID(%q) = nil, want error", tt.id)
				}
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("ValidateID(%q) error should match ErrInvalidID", tt.id)
				}
			}
		})
	}
}
