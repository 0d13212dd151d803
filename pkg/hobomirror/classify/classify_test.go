//go:build windows

package classify

import (
	"testing"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/winfs"
)

func TestClassifyChildFile(t *testing.T) {
	entry := winfs.DirEntry{
		Name:   "data.bin",
		Attrs:  item.Attrs{},
		Length: 1234,
	}

	got, err := ClassifyChild(`C:\mirror`, entry)
	if err != nil {
		t.Fatalf("ClassifyChild: %v", err)
	}
	if got.Kind() != item.KindFile {
		t.Fatalf("Kind() = %s, want file", got.Kind())
	}
	if got.Length() != 1234 {
		t.Fatalf("Length() = %d, want 1234 (regression check for the entry.Length threading)", got.Length())
	}
	if got.FullPath != `C:\mirror\data.bin` {
		t.Fatalf("FullPath = %q, want C:\\mirror\\data.bin", got.FullPath)
	}
}

func TestClassifyChildDirectory(t *testing.T) {
	entry := winfs.DirEntry{
		Name:  "sub",
		Attrs: item.Attrs{Directory: true},
	}

	got, err := ClassifyChild(`C:\mirror`, entry)
	if err != nil {
		t.Fatalf("ClassifyChild: %v", err)
	}
	if got.Kind() != item.KindDir {
		t.Fatalf("Kind() = %s, want directory", got.Kind())
	}
	if got.Length() != 0 {
		t.Fatalf("Length() = %d, want 0 for a directory", got.Length())
	}
}

func TestClassifyChildTrailingSeparatorParent(t *testing.T) {
	entry := winfs.DirEntry{Name: "leaf.txt", Length: 1}
	got, err := ClassifyChild(`C:\mirror\`, entry)
	if err != nil {
		t.Fatalf("ClassifyChild: %v", err)
	}
	if got.FullPath != `C:\mirror\leaf.txt` {
		t.Fatalf("FullPath = %q, want C:\\mirror\\leaf.txt (no doubled separator)", got.FullPath)
	}
}
