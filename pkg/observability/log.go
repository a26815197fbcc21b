package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline and cache events to a logger at debug level.
// Failed page writes are logged at warn level; failed loads stay at debug
// because the loader already warns about every skipped file.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to the default logger when nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnLoadStart(_ context.Context, path string) {
	h.Logger.Debug("loading", "file", path)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, path string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("load failed", "file", path, "took", d, "err", err)
		return
	}
	h.Logger.Debug("loaded", "file", path, "took", d)
}

func (h *LogHooks) OnPackComplete(_ context.Context, items, pages, rejected int, d time.Duration) {
	h.Logger.Debug("packed", "items", items, "pages", pages, "rejected", rejected, "took", d)
}

func (h *LogHooks) OnPageWritten(_ context.Context, page int, files []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("page write failed", "page", page, "err", err)
		return
	}
	h.Logger.Debug("page written", "page", page, "files", len(files), "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
