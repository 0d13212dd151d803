package engine

import (
	"fmt"
	"strings"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
)

// syncDir implements the four-phase per-directory reconciliation of
// spec.md §4.8.2. Both src and tgt are known to exist and to be
// directory-like (spec.md invariant I3). The phase ordering — ACL-on-dir,
// Phase 1 removals, Phase 2 same-kind syncs, Phase 3 additions, Phase 4
// child attrs, then attrs-on-dir — is load-bearing and must not be
// collapsed or reordered (spec.md §9): each phase establishes a
// precondition a later one depends on.
//
// The whole body is wrapped in a recover so that any unexpected failure —
// the "this should be unreachable" case of spec.md §4.7 — reports as both
// an Error and a CriticalError and returns, rather than unwinding past this
// subtree into its parent's phase loop (spec.md §4.8.2's "Catch-all").
func (e *Engine) syncDir(src, tgt *item.Item, topLevel bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("syncDir(%s): %v", tgt.FullPath, r)
			e.reporter.Error(err)
			e.reporter.CriticalError(err)
			ok = false
		}
	}()

	srcChildren, listedSrc := e.listChildren("list source directory", src)
	if !listedSrc {
		return false
	}
	tgtChildren, listedTgt := e.listChildren("list target directory", tgt)
	if !listedTgt {
		return false
	}

	srcChildren = e.filterSource(srcChildren)

	sortChildren(srcChildren)
	sortChildren(tgtChildren)

	srcByName := indexByName(srcChildren)
	tgtByName := indexByName(tgtChildren)

	// Directory-level ACL copy, before any sub-item is touched: an
	// inheritable ACE applied here can cascade into existing children, so
	// it must land before Phase 1 through Phase 3 run (spec.md §4.8.2
	// step 5, §9's "ACL-before-children ordering").
	if e.options.RefreshAccessControl {
		e.copySecurityDescriptor(src, tgt)
	}

	// Phase 1 — removals and kind-changes.
	for _, t := range tgtChildren {
		key := strings.ToLower(t.Name)
		s, exists := srcByName[key]
		switch {
		case !exists:
			e.reporter.Change(t.FullPath, "deleted %s: %s", t.Kind(), t.FullPath)
			e.actDelete(t)
			delete(tgtByName, key)
		case s.Kind() != t.Kind():
			e.reporter.Change(t.FullPath, "kind changed from %s to %s: %s", t.Kind(), s.Kind(), t.FullPath)
			e.actDelete(t)
			delete(tgtByName, key)
		}
	}

	// Phase 2 — same-name, same-kind reconciliation.
	for _, s := range srcChildren {
		t, exists := tgtByName[strings.ToLower(s.Name)]
		if !exists || s.Kind() != t.Kind() {
			continue
		}
		e.reconcileSameKind(s, t)
	}

	// Phase 3 — additions.
	for _, s := range srcChildren {
		key := strings.ToLower(s.Name)
		if _, exists := tgtByName[key]; exists {
			continue
		}
		e.reporter.Change(hobopath.Join(tgt.FullPath, s.Name), "new %s: %s", s.Kind(), s.FullPath)
		created := e.createChild(s, tgt)
		if created != nil {
			tgtByName[key] = created
		}
	}

	// Phase 4 — attribute & ACL refresh of children (Dir kinds are handled
	// by their own recursive syncDir call instead, both here and for the
	// directory-level step 5/step 6 counterparts).
	for _, s := range srcChildren {
		if s.Kind() == item.KindDir {
			continue
		}
		t, exists := tgtByName[strings.ToLower(s.Name)]
		if !exists {
			continue
		}
		e.refreshChildAttrs(s, t)
	}

	// Step 6 — attribute copy for this directory, suppressed at the top
	// level since a reparse-point root's attrs can't be meaningfully
	// applied without risking the link's target.
	if !topLevel && e.options.UpdateMetadata {
		e.copyAttrs(src, tgt)
	}

	return true
}

// reconcileSameKind implements Phase 2's per-kind comparison (spec.md
// §4.8.2 Phase 2).
func (e *Engine) reconcileSameKind(s, t *item.Item) {
	switch s.Kind() {
	case item.KindDir:
		e.syncDir(s, t, false)
	case item.KindFile:
		if s.Length() == t.Length() && s.Attrs.LastWriteTime.Equal(t.Attrs.LastWriteTime) {
			return
		}
		e.reporter.Change(t.FullPath, "modified file: %s (src len=%d mtime=%s, tgt len=%d mtime=%s)",
			t.FullPath, s.Length(), s.Attrs.LastWriteTime, t.Length(), t.Attrs.LastWriteTime)
		e.actCopyOrReplaceFile(s.FullPath, t.FullPath)
	case item.KindFileSymlink, item.KindDirSymlink:
		if s.Reparse().Equal(t.Reparse(), true) {
			return
		}
		e.reporter.Change(t.FullPath, "%s target changed: %s", s.Kind(), t.FullPath)
		e.recreateLink(s, t)
	case item.KindJunction:
		if s.Reparse().Equal(t.Reparse(), false) {
			return
		}
		e.reporter.Change(t.FullPath, "junction target changed: %s", t.FullPath)
		e.recreateLink(s, t)
	}
}
