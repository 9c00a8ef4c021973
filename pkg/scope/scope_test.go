package scope

import (
	"context"
	"testing"

	"intelligence-srv/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScope_fallsBackToSubject(t *testing.T) {
	sc := NewScope(Payload{Subject: "sub-1", Username: "u", Role: "ADMIN"})
	assert.Equal(t, model.Scope{UserID: "sub-1", Username: "u", Role: "ADMIN"}, sc)
}

func TestScopeContext(t *testing.T) {
	_, ok := GetScopeFromContext(context.Background())
	assert.False(t, ok)

	ctx := SetScopeToContext(context.Background(), model.Scope{UserID: "u1"})
	sc, ok := GetScopeFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", sc.UserID)
}
