package hobopath

import (
	"strings"
	"testing"
)

func TestWithTrailingSeparator(t *testing.T) {
	cases := map[string]string{
		"":           `\`,
		`C:\foo`:     `C:\foo\`,
		`C:\foo\`:    `C:\foo\`,
	}
	for in, want := range cases {
		if got := WithTrailingSeparator(in); got != want {
			t.Errorf("WithTrailingSeparator(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLongFormShortPathUnchanged(t *testing.T) {
	p := `C:\foo\bar`
	if got := LongForm(p); got != p {
		t.Errorf("LongForm(%q) = %q, want unchanged", p, got)
	}
}

func TestLongFormAlreadyPrefixedUnchanged(t *testing.T) {
	p := `\\?\C:\foo`
	if got := LongForm(p); got != p {
		t.Errorf("LongForm(%q) = %q, want unchanged", p, got)
	}
}

func TestLongFormRelativeUnchanged(t *testing.T) {
	p := strings.Repeat("a", 300)
	if got := LongForm(p); got != p {
		t.Errorf("LongForm of a long relative path must be left unchanged, got %q", got)
	}
}

func TestLongFormLongAbsolutePath(t *testing.T) {
	p := `C:\` + strings.Repeat(`dir\`, 70) + "file.txt"
	got := LongForm(p)
	if !strings.HasPrefix(got, `\\?\C:\`) {
		t.Fatalf("LongForm(%q) = %q, expected \\\\?\\C:\\ prefix", p, got)
	}
	if !strings.HasSuffix(got, "file.txt") {
		t.Fatalf("LongForm(%q) = %q, expected to end in file.txt", p, got)
	}
}

func TestLongFormBailsOutOnDotDot(t *testing.T) {
	p := `C:\` + strings.Repeat(`dir\`, 70) + `..\file.txt`
	if got := LongForm(p); got != p {
		t.Errorf("LongForm with .. component should be returned unmodified, got %q", got)
	}
}

func TestTrimLongForm(t *testing.T) {
	if got := TrimLongForm(`\\?\C:\foo`); got != `C:\foo` {
		t.Errorf("TrimLongForm = %q, want C:\\foo", got)
	}
	if got := TrimLongForm(`C:\foo`); got != `C:\foo` {
		t.Errorf("TrimLongForm of unprefixed path should be unchanged, got %q", got)
	}
}

func TestPathsEqual(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{`C:\Foo\Bar`, `c:/foo/bar/`, true},
		{`C:\Foo\Bar`, `C:\Foo\Bar`, true},
		{`C:\Foo\Bar`, `C:\Foo\Baz`, false},
		{`\\?\C:\Foo`, `C:\foo`, true},
	}
	for _, c := range cases {
		if got := PathsEqual(c.a, c.b); got != c.want {
			t.Errorf("PathsEqual(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join(`C:\foo`, "bar"); got != `C:\foo\bar` {
		t.Errorf("Join = %q, want C:\\foo\\bar", got)
	}
	if got := Join(`C:\foo\`, "bar"); got != `C:\foo\bar` {
		t.Errorf("Join with trailing separator = %q, want C:\\foo\\bar", got)
	}
	if got := Join("", "bar"); got != "bar" {
		t.Errorf("Join with empty parent = %q, want bar", got)
	}
}

func TestParent(t *testing.T) {
	if got := Parent(`C:\foo\bar`); got != `C:\foo` {
		t.Errorf("Parent = %q, want C:\\foo", got)
	}
	if got := Parent(`C:\foo\bar\`); got != `C:\foo` {
		t.Errorf("Parent with trailing separator = %q, want C:\\foo", got)
	}
	if got := Parent("noslash"); got != "" {
		t.Errorf("Parent of a no-separator path should be empty, got %q", got)
	}
}

func TestSnapshotRewrite(t *testing.T) {
	snapshotRoot := `\\?\GLOBALROOT\Device\HarddiskVolumeShadowCopy1`
	originalRoot := `C:\Data`

	child := snapshotRoot + `\sub\file.txt`
	want := `C:\Data\sub\file.txt`
	if got := SnapshotRewrite(child, snapshotRoot, originalRoot); got != want {
		t.Errorf("SnapshotRewrite(child) = %q, want %q", got, want)
	}

	if got := SnapshotRewrite(snapshotRoot, snapshotRoot, originalRoot); got != WithTrailingSeparator(originalRoot) {
		t.Errorf("SnapshotRewrite(deviceRoot) = %q, want %q", got, WithTrailingSeparator(originalRoot))
	}

	unrelated := `C:\Other\path`
	if got := SnapshotRewrite(unrelated, snapshotRoot, originalRoot); got != unrelated {
		t.Errorf("SnapshotRewrite of unrelated path should pass through, got %q", got)
	}
}
