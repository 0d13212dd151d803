package guard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
)

func TestClassifyNil(t *testing.T) {
	if got := Classify(nil); got != KindIoOther {
		t.Errorf("Classify(nil) = %s, want %s", got, KindIoOther)
	}
}

func TestClassifyNotFound(t *testing.T) {
	_, err := os.Open(`C:\does-not-exist-hobomirror-test\x`)
	if err == nil {
		t.Skip("expected a failing open to construct a not-found error")
	}
	if got := Classify(err); got != KindNotFound {
		t.Errorf("Classify(not-exist) = %s, want %s", got, KindNotFound)
	}
}

// TestClassifyNotFoundWrapped proves Classify still resolves KindNotFound
// once the underlying error has been wrapped the way Executor.Fail's real
// call sites wrap it (fmt.Errorf("...: %w", err)), rather than only the raw
// *fs.PathError os.Open itself returns.
func TestClassifyNotFoundWrapped(t *testing.T) {
	_, err := os.Open(`C:\does-not-exist-hobomirror-test\x`)
	if err == nil {
		t.Skip("expected a failing open to construct a not-found error")
	}
	wrapped := fmt.Errorf("opening path: %w", err)
	if got := Classify(wrapped); got != KindNotFound {
		t.Errorf("Classify(wrapped not-exist) = %s, want %s", got, KindNotFound)
	}
}

// TestClassifyAccessDeniedWrapped exercises the AccessDenied path the same
// way, since a real access-denied condition can't be constructed portably:
// fs.ErrPermission itself satisfies os.IsPermission's type-switch only when
// it arrives as a concrete *fs.PathError, so this wraps one to match what a
// real winfs call site produces before Executor.Fail wraps it again.
func TestClassifyAccessDeniedWrapped(t *testing.T) {
	pathErr := &fs.PathError{Op: "open", Path: `C:\secret`, Err: fs.ErrPermission}
	wrapped := fmt.Errorf("opening path: %w", error(pathErr))
	if got := Classify(wrapped); got != KindAccessDenied {
		t.Errorf("Classify(wrapped permission-denied) = %s, want %s", got, KindAccessDenied)
	}
}

func TestClassifyUnrecognizedReparseTag(t *testing.T) {
	wrapped := fmt.Errorf("classifying: %w", item.ErrUnrecognizedReparseTag)
	if got := Classify(wrapped); got != KindUnrecognizedReparseTag {
		t.Errorf("Classify(wrapped ErrUnrecognizedReparseTag) = %s, want %s", got, KindUnrecognizedReparseTag)
	}
}

func TestClassifyUnreachable(t *testing.T) {
	wrapped := fmt.Errorf("recovered: %w", ErrUnreachable)
	if got := Classify(wrapped); got != KindUnreachable {
		t.Errorf("Classify(wrapped ErrUnreachable) = %s, want %s", got, KindUnreachable)
	}
}

func TestClassifyFatalConfig(t *testing.T) {
	wrapped := fmt.Errorf("%w: bad guard file", ErrFatalConfig)
	if got := Classify(wrapped); got != KindFatalConfig {
		t.Errorf("Classify(wrapped ErrFatalConfig) = %s, want %s", got, KindFatalConfig)
	}
}

func TestClassifyGenericIoOther(t *testing.T) {
	if got := Classify(errors.New("some random failure")); got != KindIoOther {
		t.Errorf("Classify(generic) = %s, want %s", got, KindIoOther)
	}
}

func TestKindStringCoversAllValues(t *testing.T) {
	kinds := []Kind{KindIoOther, KindNotFound, KindAccessDenied, KindUnrecognizedReparseTag, KindUnreachable, KindFatalConfig}
	seen := make(map[string]bool)
	for _, k := range kinds {
		s := k.String()
		if s == "" {
			t.Errorf("Kind(%d).String() is empty", k)
		}
		seen[s] = true
	}
	if len(seen) != len(kinds) {
		t.Errorf("expected %d distinct Kind strings, got %d", len(kinds), len(seen))
	}
}
