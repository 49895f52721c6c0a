package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// tagKey is the slog attribute key used for tag-based filtering.
const tagKey = "tag"

// filteringHandler wraps a base slog.Handler and drops records that don't
// pass the configured package/file/tag allow- and deny-lists.
type filteringHandler struct {
	base slog.Handler
	cfg  *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{base: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func debugFiltered(reason string, args ...interface{}) {
	if debugFilter {
		fmt.Fprintf(os.Stderr, "[FILTER] "+reason+"\n", args...)
	}
}

// passesSet reports whether key survives an allow/deny pair of sets: a
// non-nil deny set containing key drops the record; a non-nil allow set
// not containing key also drops it.
func passesSet(key string, allow, deny map[string]struct{}) bool {
	if deny != nil {
		if _, found := deny[key]; found {
			return false
		}
	}
	if allow != nil {
		if _, found := allow[key]; !found {
			return false
		}
	}
	return true
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.base.Handle(ctx, r)
	}

	pkg, file := sourceOf(r)
	if file != "" {
		if !passesSet(strings.ToLower(pkg), h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet) {
			debugFiltered("dropped: package %q not allowed", pkg)
			return nil
		}
		if !passesSet(strings.ToLower(file), h.cfg.enabledFilesSet, h.cfg.disabledFilesSet) {
			debugFiltered("dropped: file %q not allowed", file)
			return nil
		}
	}

	tag, tagFound := tagOf(r)
	if tagFound {
		if !passesSet(tag, h.cfg.enabledTagsSet, h.cfg.disabledTagsSet) {
			debugFiltered("dropped: tag %q not allowed", tag)
			return nil
		}
	} else if h.cfg.enabledTagsSet != nil {
		debugFiltered("dropped: message has no tag but specific tags are enabled")
		return nil
	}

	return h.base.Handle(ctx, r)
}

// sourceOf extracts the calling package/file from a record, preferring
// the Source attribute and falling back to the captured program counter.
func sourceOf(r slog.Record) (pkg, file string) {
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == slog.SourceKey {
			if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
				file = filepath.Base(source.File)
				pkg = filepath.Base(filepath.Dir(source.File))
				found = true
			}
			return false
		}
		return true
	})
	if !found && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			file = filepath.Base(frame.File)
			pkg = filepath.Base(filepath.Dir(frame.File))
		}
	}
	return pkg, file
}

func tagOf(r slog.Record) (tag string, found bool) {
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			found = true
			return false
		}
		return true
	})
	return tag, found
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.base.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.base.WithGroup(name), h.cfg)
}
