package apierrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDocumentError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &DocumentError{
			Document: DocumentOld,
			Path:     "/cart",
			Field:    "paths",
			Message:  "expected a mapping",
			Cause:    errors.New("got string"),
		}

		msg := err.Error()
		want := `invalid old document at path "/cart" (field paths): expected a mapping: got string`
		if msg != want {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &DocumentError{}
		if err.Error() != "invalid document" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches sentinel", func(t *testing.T) {
		err := &DocumentError{Field: "paths"}
		if !errors.Is(err, ErrInvalidDocument) {
			t.Error("DocumentError should match ErrInvalidDocument")
		}
		if errors.Is(err, ErrInvalidMethodEntry) {
			t.Error("DocumentError should not match ErrInvalidMethodEntry")
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &DocumentError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})
}

func TestMethodEntryError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &MethodEntryError{
			Document: DocumentNew,
			Path:     "/orders",
			Method:   "post",
			Field:    "parameters",
			Message:  "expected a list",
		}
		want := "invalid method entry in new document post /orders (field parameters): expected a list"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &MethodEntryError{}
		if err.Error() != "invalid method entry" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("errors.As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("comparing: %w", &MethodEntryError{Path: "/a", Method: "get"})
		var me *MethodEntryError
		if !errors.As(wrapped, &me) {
			t.Fatal("errors.As should find MethodEntryError")
		}
		if me.Method != "get" || me.Path != "/a" {
			t.Errorf("unexpected fields: %+v", me)
		}
		if !errors.Is(wrapped, ErrInvalidMethodEntry) {
			t.Error("wrapped error should match ErrInvalidMethodEntry")
		}
	})
}

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "api.json",
			Format:  "json",
			Message: "invalid syntax",
			Cause:   errors.New("unexpected EOF"),
		}
		if err.Error() != "parse error in api.json (json): invalid syntax: unexpected EOF" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches sentinel", func(t *testing.T) {
		if !errors.Is(&ParseError{}, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := &ConfigError{Option: "workers", Value: -1, Message: "must be positive"}
		if err.Error() != "configuration error for workers (value: -1): must be positive" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches sentinel", func(t *testing.T) {
		if !errors.Is(&ConfigError{}, ErrConfig) {
			t.Error("ConfigError should match ErrConfig")
		}
	})
}

func TestWithDocument(t *testing.T) {
	t.Run("sets side on DocumentError", func(t *testing.T) {
		err := WithDocument(&DocumentError{Field: "paths"}, DocumentOld)
		var de *DocumentError
		if !errors.As(err, &de) || de.Document != DocumentOld {
			t.Errorf("expected old side, got %v", err)
		}
	})

	t.Run("keeps existing side", func(t *testing.T) {
		err := WithDocument(&MethodEntryError{Document: DocumentNew}, DocumentOld)
		var me *MethodEntryError
		if !errors.As(err, &me) || me.Document != DocumentNew {
			t.Errorf("expected new side to be kept, got %v", err)
		}
	})

	t.Run("does not mutate the original", func(t *testing.T) {
		orig := &MethodEntryError{Method: "get"}
		_ = WithDocument(orig, DocumentNew)
		if orig.Document != "" {
			t.Error("original error should not be modified")
		}
	})

	t.Run("passes other errors through", func(t *testing.T) {
		plain := errors.New("boom")
		//nolint:errorlint // testing pointer identity
		if WithDocument(plain, DocumentOld) != plain {
			t.Error("plain error should be returned unchanged")
		}
	})
}
