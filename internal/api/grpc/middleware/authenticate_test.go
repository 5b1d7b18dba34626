package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/contacts-server/internal/mocks"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/testutil"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	user := model.User{ID: 1, Email: "deadpool@example.com", Confirmed: true}

	tests := []struct {
		name         string
		mdAuthHeader string
		resolveToken string
		resolveUser  model.User
		resolveErr   error
		wantGRPCCode codes.Code
		wantErr      bool
		expectSetCtx bool
	}{
		{
			name:         "missing authorization header",
			wantGRPCCode: codes.Unauthenticated,
			wantErr:      true,
		},
		{
			name:         "wrong scheme",
			mdAuthHeader: "Basic dXNlcjpwYXNz",
			wantGRPCCode: codes.Unauthenticated,
			wantErr:      true,
		},
		{
			name:         "rejected token",
			mdAuthHeader: "Bearer invalid",
			resolveToken: "invalid",
			resolveErr:   model.ErrUnauthorized,
			wantGRPCCode: codes.Unauthenticated,
			wantErr:      true,
		},
		{
			name:         "store failure",
			mdAuthHeader: "Bearer token",
			resolveToken: "token",
			resolveErr:   assert.AnError,
			wantGRPCCode: codes.Internal,
			wantErr:      true,
		},
		{
			name:         "valid token",
			mdAuthHeader: "Bearer token",
			resolveToken: "token",
			resolveUser:  user,
			wantGRPCCode: codes.OK,
			expectSetCtx: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lg := testutil.MakeNoopLogger()
			cm := mocks.NewContextManager(t)
			if tt.expectSetCtx {
				cm.On("SetUserToContext", mock.Anything, tt.resolveUser).Return(context.Background())
			}

			svc := mocks.NewAuthService(t)
			if tt.resolveToken != "" {
				svc.On("ResolveIdentity", mock.Anything, tt.resolveToken).Return(tt.resolveUser, tt.resolveErr)
			}
			m := NewAuthenticate(svc, cm, lg)

			ctx := context.Background()
			if tt.mdAuthHeader != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.mdAuthHeader))
			}

			newCtx, err := m.AuthFunc(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok)
				assert.Equal(t, tt.wantGRPCCode, st.Code())
				assert.Nil(t, newCtx)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, newCtx)
			}
		})
	}
}
