package engine

import (
	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/winfs"
)

// actDelete implements the reparse-safe recursive delete of spec.md §4.8.3,
// grounded on the relative-delete walk in hcsshim's
// internal/safefile.RemoveAllRelative: non-Dir kinds (which, thanks to
// invariant I2, include Junction and DirSymlink) are removed directly,
// taking out only the reparse point itself and never descending into
// whatever it points at. A Dir is emptied depth-first (non-dirs before
// dirs, matching sortChildren) and then removed once empty.
func (e *Engine) actDelete(target *item.Item) bool {
	if target.Kind() != item.KindDir {
		return e.exec.Action("Delete", target.FullPath, func() error {
			return winfs.Delete(target.FullPath, target.Kind().IsContainer())
		})
	}

	children, ok := e.listChildren("list for delete", target)
	if !ok {
		return false
	}
	sortChildren(children)

	allOK := true
	for _, child := range children {
		if !e.actDelete(child) {
			allOK = false
		}
	}
	if !allOK {
		return false
	}

	return e.exec.Action("Delete", target.FullPath, func() error {
		return winfs.Delete(target.FullPath, true)
	})
}
