package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	assert.Len(t, traceID, 32)
	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err)

	assert.Empty(t, GetTraceID(ctx), "original context must stay unchanged")
}

func TestGetTraceIDWithWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestGenerateTraceIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := newTraceID()
		require.Len(t, id, 32)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()

	_, ok := GetPrincipal(ctx)
	assert.False(t, ok)
	assert.Empty(t, GetToken(ctx))

	principal := domain.Principal{ID: uuid.New(), Username: "alice", Role: domain.RoleUser}
	ctx = WithPrincipal(ctx, principal, "tok")

	got, ok := GetPrincipal(ctx)
	require.True(t, ok)
	assert.Equal(t, principal, got)
	assert.Equal(t, "tok", GetToken(ctx))
}
