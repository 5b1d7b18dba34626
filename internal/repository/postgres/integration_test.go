//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/contacts-server/internal/model"
	repo "github.com/dtroode/contacts-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "contacts_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/contacts_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	cr := repo.NewContactRepository(conn)

	owner, err := ur.Create(ctx, model.User{Username: "deadpool", Email: "deadpool@example.com", PasswordHash: "$2a$10$hash"})
	require.NoError(t, err)
	require.NotZero(t, owner.ID)

	t.Run("user_repository", func(t *testing.T) {
		_, err := ur.Create(ctx, model.User{Username: "again", Email: owner.Email, PasswordHash: "x"})
		require.ErrorIs(t, err, model.ErrAlreadyExists)

		byEmail, err := ur.GetByEmail(ctx, owner.Email)
		require.NoError(t, err)
		require.Equal(t, owner.ID, byEmail.ID)
		require.False(t, byEmail.Confirmed)

		require.NoError(t, ur.SetConfirmed(ctx, owner.Email))
		byID, err := ur.GetByID(ctx, owner.ID)
		require.NoError(t, err)
		require.True(t, byID.Confirmed)

		withAvatar, err := ur.SetAvatar(ctx, owner.Email, "http://localhost:9000/avatars/1")
		require.NoError(t, err)
		require.Equal(t, "http://localhost:9000/avatars/1", withAvatar.AvatarURL())

		_, err = ur.GetByEmail(ctx, "ghost@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("refresh_rotation", func(t *testing.T) {
		require.NoError(t, ur.SetRefreshToken(ctx, owner.Email, "fp-1"))

		var wg sync.WaitGroup
		results := make(chan bool, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ok, err := ur.RotateRefreshToken(ctx, owner.Email, "fp-1", fmt.Sprintf("fp-2-%d", i))
				require.NoError(t, err)
				results <- ok
			}(i)
		}
		wg.Wait()
		close(results)

		winners := 0
		for ok := range results {
			if ok {
				winners++
			}
		}
		require.Equal(t, 1, winners)

		require.NoError(t, ur.SetRefreshToken(ctx, owner.Email, ""))
		u, err := ur.GetByEmail(ctx, owner.Email)
		require.NoError(t, err)
		require.Nil(t, u.RefreshToken)
	})

	t.Run("contact_repository", func(t *testing.T) {
		birthday := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
		saved, err := cr.Create(ctx, model.Contact{
			OwnerID: owner.ID, FirstName: "Wade", LastName: "Wilson", Email: "wade@example.com",
			Phone: "+380501234567", Birthday: birthday, Description: "merc",
		})
		require.NoError(t, err)

		list, err := cr.List(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)

		found, err := cr.Search(ctx, owner.ID, "Wilson")
		require.NoError(t, err)
		require.Len(t, found, 1)

		_, err = cr.GetByID(ctx, owner.ID+1000, saved.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		saved.Description = "regenerating"
		updated, err := cr.Update(ctx, saved)
		require.NoError(t, err)
		require.Equal(t, "regenerating", updated.Description)

		removed, err := cr.Delete(ctx, owner.ID, saved.ID)
		require.NoError(t, err)
		require.Equal(t, saved.ID, removed.ID)

		_, err = cr.Delete(ctx, owner.ID, saved.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}
