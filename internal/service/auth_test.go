package service

import (
	"context"
	"testing"

	"github.com/rwangliu/library-lending-server/internal/apperrors"
	"github.com/rwangliu/library-lending-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	var created *models.User
	repo := &stubRepository{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return nil, nil
		},
		createUserFn: func(ctx context.Context, user *models.User) error {
			user.ID = "user-1"
			created = user
			return nil
		},
	}

	resp, err := newTestService(repo).Register(context.Background(), models.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleMember, created.Role)
	assert.NotEqual(t, "password123", created.Password, "password must never be stored in the clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))

	assert.Equal(t, "user-1", resp.UserID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 3600, resp.ExpiresIn)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	repo := &stubRepository{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "existing", Email: email}, nil
		},
	}

	_, err := newTestService(repo).Register(context.Background(), models.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindEmailTaken))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	active := &models.User{ID: "u1", Email: "known@example.com", Password: string(hash), IsActive: true}
	deactivated := &models.User{ID: "u2", Email: "gone@example.com", Password: string(hash), IsActive: false}

	repo := &stubRepository{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			switch email {
			case active.Email:
				return active, nil
			case deactivated.Email:
				return deactivated, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(repo)

	cases := []models.LoginRequest{
		{Email: "unknown@example.com", Password: "correct-password"},
		{Email: "known@example.com", Password: "wrong-password"},
		{Email: "gone@example.com", Password: "correct-password"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidCredentials), req.Email)
	}

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "known@example.com", Password: "correct-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.UserID)
	assert.NotEmpty(t, resp.Token)
}
