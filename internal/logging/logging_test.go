package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink down")
}

func TestMultiHandler_FanOutSurvivesFailingSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewMultiHandler(
		failingHandler{},
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}),
	))

	logger.Info("member added", "group_id", "g1")

	assert.Contains(t, buf.String(), `"msg":"member added"`)
	assert.Contains(t, buf.String(), `"group_id":"g1"`)
}

func TestPGHandler_PersistsErrorRecords(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewPGHandler(db, time.Hour)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("ignored")
	logger.Error("request failed",
		"action", "add_member",
		"kind", "StoreError",
		"user_id", "u1",
		"group_id", "g1",
		"error", "boom",
		"path", "/groupmember/g1",
	)
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "add_member", entry.Action)
	assert.Equal(t, "StoreError", entry.Kind)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u1", *entry.UserID)
	require.NotNil(t, entry.GroupID)
	assert.Equal(t, "g1", *entry.GroupID)
	assert.JSONEq(t, `{"path":"/groupmember/g1"}`, string(entry.Extra))
}

func TestPGHandler_FullBatchFlushedByLoop(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewPGHandler(db, time.Hour)
	logger := slog.New(h)

	for i := 0; i < pgBatchSize; i++ {
		logger.Error("share failed", "action", "share_album")
	}

	require.Eventually(t, func() bool {
		var n int64
		return db.Model(&models.SystemLog{}).Count(&n).Error == nil && n == pgBatchSize
	}, 5*time.Second, 10*time.Millisecond)

	logger.Error("after batch")
	h.Stop()

	var n int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&n).Error)
	assert.EqualValues(t, pgBatchSize+1, n)
}

func TestPurgeOlderThan(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{Timestamp: now.AddDate(0, 0, -40), Level: "ERROR", Message: "old"},
		{Timestamp: now, Level: "ERROR", Message: "new"},
	}).Error)

	deleted, err := PurgeOlderThan(db, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []models.SystemLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].Message)
}
