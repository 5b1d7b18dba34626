package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/contacts-server/internal/model"
)

var userRowColumns = []string{"id", "username", "email", "password", "avatar", "refresh_token", "confirmed", "created_at"}

func newUserRepo(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return NewUserRepository(mockDB), mockDB
}

func userRow(created time.Time, avatar *string, fingerprint *string) *pgxmock.Rows {
	return pgxmock.NewRows(userRowColumns).
		AddRow(int64(1), "deadpool", "deadpool@example.com", "$2a$10$hash", avatar, fingerprint, true, created)
}

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	avatar := "http://avatar"

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		want    model.User
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
					WithArgs("deadpool@example.com").
					WillReturnRows(userRow(created, &avatar, (*string)(nil)))
			},
			want: model.User{
				ID: 1, Username: "deadpool", Email: "deadpool@example.com", PasswordHash: "$2a$10$hash",
				Avatar: &avatar, Confirmed: true, CreatedAt: created,
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
					WithArgs("deadpool@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newUserRepo(t)
			tt.setup(mock)

			got, err := repo.GetByEmail(context.Background(), "deadpool@example.com")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail_DatabaseError(t *testing.T) {
	repo, mock := newUserRepo(t)
	mock.ExpectQuery(`SELECT (.+) FROM users`).WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByEmail(context.Background(), "deadpool@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get user by email")
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mock := newUserRepo(t)
	created := time.Now().UTC()
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(userRow(created, (*string)(nil), (*string)(nil)))

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Nil(t, got.Avatar)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newUserRepo(t)
	created := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("deadpool", "deadpool@example.com", "$2a$10$hash", pgxmock.AnyArg(), false).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(int64(7), "deadpool", "deadpool@example.com", "$2a$10$hash", (*string)(nil), (*string)(nil), false, created))

	saved, err := repo.Create(context.Background(), model.User{
		Username: "deadpool", Email: "deadpool@example.com", PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.ID)
	assert.False(t, saved.Confirmed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	repo, mock := newUserRepo(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Create(context.Background(), model.User{Email: "deadpool@example.com"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestUserRepository_SetRefreshToken(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "updated", affected: 1},
		{name: "unknown email", affected: 0, wantErr: model.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newUserRepo(t)
			mock.ExpectExec(`UPDATE users SET refresh_token = NULLIF\(\$2, ''\) WHERE email = \$1`).
				WithArgs("deadpool@example.com", "fingerprint").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			err := repo.SetRefreshToken(context.Background(), "deadpool@example.com", "fingerprint")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_RotateRefreshToken(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "expected fingerprint matches", affected: 1, want: true},
		{name: "already rotated", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newUserRepo(t)
			mock.ExpectExec(`UPDATE users SET refresh_token = \$3 WHERE email = \$1 AND refresh_token = \$2`).
				WithArgs("deadpool@example.com", "old", "new").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			ok, err := repo.RotateRefreshToken(context.Background(), "deadpool@example.com", "old", "new")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_RotateRefreshToken_Error(t *testing.T) {
	repo, mock := newUserRepo(t)
	mock.ExpectExec(`UPDATE users`).WillReturnError(errors.New("deadlock"))

	ok, err := repo.RotateRefreshToken(context.Background(), "deadpool@example.com", "old", "new")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestUserRepository_SetConfirmed(t *testing.T) {
	repo, mock := newUserRepo(t)
	mock.ExpectExec(`UPDATE users SET confirmed = TRUE WHERE email = \$1`).
		WithArgs("deadpool@example.com").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE users SET confirmed = TRUE WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.SetConfirmed(context.Background(), "deadpool@example.com"))
	assert.ErrorIs(t, repo.SetConfirmed(context.Background(), "ghost@example.com"), model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetAvatar(t *testing.T) {
	repo, mock := newUserRepo(t)
	avatar := "test/avatar/v1/picture.jpg"
	mock.ExpectQuery(`UPDATE users SET avatar = \$2 WHERE email = \$1 RETURNING`).
		WithArgs("deadpool@example.com", avatar).
		WillReturnRows(userRow(time.Now().UTC(), &avatar, (*string)(nil)))

	user, err := repo.SetAvatar(context.Background(), "deadpool@example.com", avatar)
	require.NoError(t, err)
	assert.Equal(t, avatar, user.AvatarURL())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetAvatar_NotFound(t *testing.T) {
	repo, mock := newUserRepo(t)
	mock.ExpectQuery(`UPDATE users SET avatar`).WillReturnError(pgx.ErrNoRows)

	_, err := repo.SetAvatar(context.Background(), "ghost@example.com", "url")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
