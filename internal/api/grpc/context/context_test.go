package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/contacts-server/internal/model"
)

func TestManager_SetAndGetUser(t *testing.T) {
	m := NewManager()
	user := model.User{ID: 1, Username: "deadpool", Email: "deadpool@example.com", Confirmed: true}
	ctx := m.SetUserToContext(stdctx.Background(), user)

	got, ok := m.GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestManager_GetUser_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetUserFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_MetadataIsNotIdentity(t *testing.T) {
	m := NewManager()
	md := metadata.New(map[string]string{"user_id": "1"})
	ctx := metadata.NewIncomingContext(stdctx.Background(), md)

	_, ok := m.GetUserFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_SetUser_KeepsParentValues(t *testing.T) {
	m := NewManager()
	baseMD := metadata.New(map[string]string{"x-trace-id": "t"})
	ctx := m.SetUserToContext(metadata.NewIncomingContext(stdctx.Background(), baseMD), model.User{ID: 2})

	md, ok := metadata.FromIncomingContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, []string{"t"}, md.Get("x-trace-id"))

	got, ok := m.GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(2), got.ID)
}
