package engine

import (
	"sort"
	"strings"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/classify"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/winfs"
)

// listChildren lists dirItem's children via C5 (winfs.ListDirectory plus
// classify.ClassifyChild), excluding the guard file. An entry whose
// classification fails is skipped and reported as an Error rather than
// failing the whole listing (spec.md §4.5: "on failure the item is skipped
// and an error is logged"). It returns false only if the directory listing
// itself failed (spec.md §4.8.2 step 1: "If either listing fails, report
// and return — the subtree is skipped").
func (e *Engine) listChildren(label string, dirItem *item.Item) ([]*item.Item, bool) {
	entries, err := winfs.ListDirectory(dirItem.FullPath)
	if err != nil {
		return nil, e.exec.Fail(label, dirItem.FullPath, err)
	}

	children := make([]*item.Item, 0, len(entries))
	for _, entry := range entries {
		if strings.EqualFold(entry.Name, GuardFileName) {
			continue
		}
		child, classifyErr := classify.ClassifyChild(dirItem.FullPath, entry)
		if classifyErr != nil {
			e.exec.Fail("classify", hobopath.Join(dirItem.FullPath, entry.Name), classifyErr)
			continue
		}
		children = append(children, child)
	}
	return children, true
}

// filterSource applies the Ignore-paths and Ignore-dir-names filters of
// spec.md §4.8.2 step 3 to the source child list only: dropping a source
// child here makes the subsequent phases behave as though the source never
// had it, so the target's existing counterpart (if any) is deleted in
// Phase 1 — this is what completes ignore-driven removal (property P6).
func (e *Engine) filterSource(children []*item.Item) []*item.Item {
	if len(e.ignorePaths) == 0 && len(e.ignoreDirNames) == 0 {
		return children
	}
	filtered := children[:0:0]
	for _, c := range children {
		original := hobopath.SnapshotRewrite(c.FullPath, e.snapshotRoot, e.originalRoot)
		if e.matchesIgnorePath(original) {
			continue
		}
		if c.Kind() == item.KindDir {
			if _, ignored := e.ignoreDirNames[strings.ToLower(c.Name)]; ignored {
				continue
			}
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func (e *Engine) matchesIgnorePath(path string) bool {
	for _, ignored := range e.ignorePaths {
		if hobopath.PathsEqual(path, ignored) {
			return true
		}
	}
	return false
}

// sortChildren orders entries non-directories first, then directories,
// each group case-insensitive by name (spec.md §4.8.2 step 4): leaves are
// fully processed, in both deletion and creation phases, before their
// enclosing containers.
func sortChildren(children []*item.Item) {
	sort.SliceStable(children, func(i, j int) bool {
		iDir := children[i].Kind() == item.KindDir
		jDir := children[j].Kind() == item.KindDir
		if iDir != jDir {
			return !iDir
		}
		return strings.ToLower(children[i].Name) < strings.ToLower(children[j].Name)
	})
}

func indexByName(children []*item.Item) map[string]*item.Item {
	m := make(map[string]*item.Item, len(children))
	for _, c := range children {
		m[strings.ToLower(c.Name)] = c
	}
	return m
}
