package engine

import (
	"github.com/hobomirror/hobomirror/pkg/hobomirror/classify"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/reparse"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/winfs"
)

// createChild implements Phase 3's per-kind creation dispatch (spec.md
// §4.8.2 Phase 3). On success it classifies the newly created entry and
// returns it so Phase 4 can find a target counterpart by name; on failure
// it returns nil.
func (e *Engine) createChild(s *item.Item, parentDir *item.Item) *item.Item {
	newPath := hobopath.Join(parentDir.FullPath, s.Name)

	if s.Kind() == item.KindDir {
		if !e.exec.Action("Create directory", newPath, func() error {
			return winfs.CreateDirectory(newPath)
		}) {
			return nil
		}
		// The directory's own ACL (step 5) and attrs (step 6) are applied
		// by this recursive syncDir call, not by Phase 4 — Phase 4
		// explicitly skips Dir kinds for exactly this reason.
		newDir := item.NewDir(newPath, s.Name, s.Attrs)
		e.syncDir(s, newDir, false)
		return newDir
	}

	var created bool
	switch s.Kind() {
	case item.KindFile:
		created = e.actCopyOrReplaceFile(s.FullPath, newPath)
	case item.KindFileSymlink, item.KindDirSymlink, item.KindJunction:
		created = e.createLink(s, newPath)
	default:
		return nil
	}
	if !created {
		return nil
	}

	classified, err := classify.Classify(newPath)
	if err != nil {
		e.exec.Fail("classify new entry", newPath, err)
		return nil
	}
	return classified
}

// createLink creates an empty container for s's kind at newPath and
// applies the corresponding reparse data (spec.md §4.8.2 Phase 3's
// FileSymlink/DirSymlink/Junction dispatch).
func (e *Engine) createLink(s *item.Item, newPath string) bool {
	r := s.Reparse()

	switch s.Kind() {
	case item.KindFileSymlink:
		if !e.exec.Action("Create file", newPath, func() error { return winfs.CreateEmptyFile(newPath) }) {
			return false
		}
		return e.exec.Do("Set symlink data", newPath, func() error {
			return reparse.SetSymlinkData(newPath, r.SubstituteName, r.PrintName, r.IsRelative)
		})
	case item.KindDirSymlink:
		if !e.exec.Action("Create directory", newPath, func() error { return winfs.CreateDirectory(newPath) }) {
			return false
		}
		return e.exec.Do("Set symlink data", newPath, func() error {
			return reparse.SetSymlinkData(newPath, r.SubstituteName, r.PrintName, r.IsRelative)
		})
	case item.KindJunction:
		if !e.exec.Action("Create directory", newPath, func() error { return winfs.CreateDirectory(newPath) }) {
			return false
		}
		return e.exec.Do("Set junction data", newPath, func() error {
			return reparse.SetJunctionData(newPath, r.SubstituteName, r.PrintName)
		})
	default:
		return false
	}
}

// recreateLink implements Phase 2's delete-then-create handling for a
// same-kind link whose reparse data has diverged (spec.md §4.8.2 Phase 2).
func (e *Engine) recreateLink(s, t *item.Item) {
	if !e.actDelete(t) {
		return
	}
	e.createLink(s, t.FullPath)
}
