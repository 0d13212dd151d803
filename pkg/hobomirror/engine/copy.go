package engine

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/winfs"
)

// progressSampleInterval is the throttle period of spec.md §4.8.5: the
// underlying copy primitive fires a progress callback per 128 KiB chunk,
// but the engine only forwards a sample at most this often.
const progressSampleInterval = 100 * time.Millisecond

// actCopyOrReplaceFile implements the crash-safe replace protocol of
// spec.md §4.8.4. Content lands only in a uniquely-named temporary file
// beside tgtFinal; tgtFinal itself is touched only by the single,
// atomic-within-volume Rename call, so it is never observable holding a
// mix of old and new bytes (invariant I4, property P3). On a content-copy
// failure the orphaned temp file is left in place, exactly as spec.md
// §4.8.4 step 2 accepts ("leaving tgtTemp is acceptable; no Change was
// completed").
func (e *Engine) actCopyOrReplaceFile(src, tgtFinal string) bool {
	tgtTemp := hobopath.Join(hobopath.Parent(tgtFinal), tempFilePrefix+uuid.NewString()+tempFileSuffix)

	copied := e.exec.Action("Copy file", fmt.Sprintf("%s -> %s", src, tgtFinal), func() error {
		return winfs.CopyFileContent(src, tgtTemp, e.throttledProgress(tgtFinal))
	})
	if !copied {
		return false
	}

	return e.exec.Do("Replace", tgtFinal, func() error {
		return winfs.Rename(tgtTemp, tgtFinal, true)
	})
}

// throttledProgress wraps a CopyProgress callback so that at most one
// Debug event reaches the reporter per progressSampleInterval, always
// including the final (Copied == Total) sample regardless of timing.
func (e *Engine) throttledProgress(label string) func(winfs.CopyProgress) {
	var last time.Time
	return func(p winfs.CopyProgress) {
		now := time.Now()
		final := p.Copied == p.Total
		if !final && !last.IsZero() && now.Sub(last) < progressSampleInterval {
			return
		}
		last = now
		e.reporter.Debug("%s: %s / %s", label, humanize.Bytes(p.Copied), humanize.Bytes(p.Total))
	}
}
