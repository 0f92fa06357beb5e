package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const pgBatchSize = 50

// PGHandler is an slog.Handler that batches ERROR+ records into system_logs.
type PGHandler struct {
	db     *gorm.DB
	attrs  []slog.Attr
	shared *pgBuffer
}

type pgBuffer struct {
	mu      sync.Mutex
	entries []models.SystemLog
	ticker  *time.Ticker
	full    chan struct{}
	done    chan struct{}
	stopped sync.WaitGroup
}

func NewPGHandler(db *gorm.DB, flushEvery time.Duration) *PGHandler {
	h := &PGHandler{
		db: db,
		shared: &pgBuffer{
			entries: make([]models.SystemLog, 0, pgBatchSize),
			ticker:  time.NewTicker(flushEvery),
			full:    make(chan struct{}, 1),
			done:    make(chan struct{}),
		},
	}
	h.shared.stopped.Add(1)
	go h.flushLoop()
	return h
}

func (h *PGHandler) flushLoop() {
	defer h.shared.stopped.Done()
	for {
		select {
		case <-h.shared.ticker.C:
			h.Flush()
		case <-h.shared.full:
			h.Flush()
		case <-h.shared.done:
			h.Flush()
			return
		}
	}
}

// Flush writes buffered entries immediately.
func (h *PGHandler) Flush() {
	b := h.shared
	b.mu.Lock()
	if len(b.entries) == 0 {
		b.mu.Unlock()
		return
	}
	batch := b.entries
	b.entries = make([]models.SystemLog, 0, pgBatchSize)
	b.mu.Unlock()

	if err := h.db.CreateInBatches(batch, pgBatchSize).Error; err != nil {
		// Logged below ERROR so the record does not loop back into this handler.
		slog.Warn("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Stop flushes what is buffered and waits for the flush loop to exit.
func (h *PGHandler) Stop() {
	h.shared.ticker.Stop()
	close(h.shared.done)
	h.shared.stopped.Wait()
}

// Enabled only handles ERROR and above.
func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			if s := a.Value.String(); s != "" {
				entry.UserID = &s
			}
		case "group_id":
			if s := a.Value.String(); s != "" {
				entry.GroupID = &s
			}
		case "action":
			entry.Action = a.Value.String()
		case "kind":
			entry.Kind = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	b := h.shared
	b.mu.Lock()
	b.entries = append(b.entries, entry)
	needFlush := len(b.entries) >= pgBatchSize
	b.mu.Unlock()

	// Full batches are written by the flush loop, which Stop waits for.
	if needFlush {
		select {
		case b.full <- struct{}{}:
		default:
		}
	}
	return nil
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PGHandler{db: h.db, attrs: merged, shared: h.shared}
}

func (h *PGHandler) WithGroup(name string) slog.Handler {
	return h
}
