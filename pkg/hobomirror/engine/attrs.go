package engine

import (
	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/security"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/winfs"
)

// copySecurityDescriptor implements the security-descriptor half of
// spec.md §4.8.2 step 5 (directory-level) and Phase 4 (child-level): read
// the full descriptor from src and apply it atomically to tgt.
func (e *Engine) copySecurityDescriptor(src, tgt *item.Item) bool {
	isDir := src.Kind().IsContainer()
	sd, err := security.Get(src.FullPath, isDir)
	if err != nil {
		return e.exec.Fail("get security descriptor", src.FullPath, err)
	}
	return e.exec.Do("Set security descriptor", tgt.FullPath, func() error {
		return security.Set(tgt.FullPath, isDir, sd)
	})
}

// copyAttrs implements the timestamp/attribute-bit half of spec.md §4.8.2
// Phase 4 and step 6: open tgt for attribute writes and apply src's attrs
// verbatim.
func (e *Engine) copyAttrs(src, tgt *item.Item) bool {
	h, err := winfs.OpenHandle(tgt.FullPath, winfs.AccessWriteAttributes)
	if err != nil {
		return e.exec.Fail("open for attribute write", tgt.FullPath, err)
	}
	defer h.Close()

	return e.exec.Do("Set attributes", tgt.FullPath, func() error {
		return winfs.SetAttributes(h, src.Attrs)
	})
}

// refreshChildAttrs implements Phase 4 for one non-directory child (spec.md
// §4.8.2 Phase 4: "copy security descriptor, then copy timestamps+attribute
// bits"), gated by the two run-time toggles.
func (e *Engine) refreshChildAttrs(src, tgt *item.Item) {
	if e.options.RefreshAccessControl {
		e.copySecurityDescriptor(src, tgt)
	}
	if e.options.UpdateMetadata {
		e.copyAttrs(src, tgt)
	}
}
