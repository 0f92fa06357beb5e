package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: notFound("group %s", "g1"), want: "NotFoundError"},
		{err: conflict("dup"), want: "ConflictError"},
		{err: invalid("bad"), want: "ValidationError"},
		{err: denied("no"), want: "PermissionError"},
		{err: storeErr("op", errors.New("connection reset")), want: "StoreError"},
		{err: errors.New("plain"), want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(tt.err))
	}
}

func TestStoreErr_KeepsExistingKind(t *testing.T) {
	assert.Nil(t, storeErr("op", nil))

	nf := notFound("album %s", "a1")
	assert.Same(t, nf, storeErr("load", nf))

	wrapped := storeErr("load", fmt.Errorf("tx: %w", nf))
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrStore)

	raw := errors.New("disk full")
	err := storeErr("insert", raw)
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, raw)
	assert.Contains(t, err.Error(), "insert")
}
