package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "segredo-de-teste"

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	return NewService(userRepo, config.Auth{Secret: testSecret, TokenTTL: time.Hour}), userRepo
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_LoginUser(t *testing.T) {
	ctx := context.Background()
	activeUser := &domain.User{ID: "u1", TenantID: "tenant-1", Name: "Ana", Email: "ana@example.com", Active: true, RoleID: 2}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(repo *mocks.MockUserRepository)
		wantErr  error
		wantCode string
	}{
		{
			name:     "Campos obrigatórios",
			email:    "",
			password: "x",
			setup:    func(repo *mocks.MockUserRepository) {},
			wantErr:  ErrMissingRequiredData,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "Usuário inexistente",
			email:    "ghost@example.com",
			password: "Senha@123",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(ctx, "ghost@example.com").Return(nil, nil)
			},
			wantErr:  ErrUserNotFound,
			wantCode: apiErrors.ErrUserNotFound,
		},
		{
			name:     "Usuário desativado",
			email:    "ana@example.com",
			password: "Senha@123",
			setup: func(repo *mocks.MockUserRepository) {
				u := *activeUser
				u.Active = false
				repo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(&u, nil)
			},
			wantErr:  ErrUserDisabled,
			wantCode: apiErrors.ErrUserDisabled,
		},
		{
			name:     "Senha incorreta",
			email:    " ANA@example.com ",
			password: "errada",
			setup: func(repo *mocks.MockUserRepository) {
				u := *activeUser
				u.PasswordHash = hashed(t, "Senha@123")
				repo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(&u, nil)
			},
			wantErr:  ErrInvalidCredentials,
			wantCode: apiErrors.ErrInvalidCredentials,
		},
		{
			name:     "Erro no banco",
			email:    "ana@example.com",
			password: "Senha@123",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(nil, errors.New("db fora"))
			},
			wantCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			token, err := service.LoginUser(ctx, tt.email, tt.password)

			assert.Empty(t, token)
			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestService_LoginAndValidateToken(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	user := &domain.User{
		ID: "u1", TenantID: "tenant-1", Name: "Ana", Email: "ana@example.com",
		PasswordHash: hashed(t, "Senha@123"), Active: true, RoleID: 2,
	}
	repo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(user, nil)

	token, err := service.LoginUser(ctx, "ana@example.com", "Senha@123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, 2, claims.UserRoleID)
}

func TestService_ValidateToken_Invalid(t *testing.T) {
	service, _ := newTestService(t)

	t.Run("Token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("nao-e-um-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Assinado com outro segredo", func(t *testing.T) {
		other := NewService(nil, config.Auth{Secret: "outro", TokenTTL: time.Hour})
		token, err := other.generateJWT(&domain.User{ID: "u1", TenantID: "tenant-1"})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token expirado", func(t *testing.T) {
		expired := NewService(nil, config.Auth{Secret: testSecret, TokenTTL: time.Hour})
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := expired.generateJWT(&domain.User{ID: "u1", TenantID: "tenant-1"})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Sem tenant", func(t *testing.T) {
		token, err := service.generateJWT(&domain.User{ID: "u1"})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Sucesso", func(t *testing.T) {
		service, repo := newTestService(t)

		repo.EXPECT().GetUserByEmail(ctx, "novo@example.com").Return(nil, nil)
		repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
			return u, nil
		})

		user, err := service.CreateUser(ctx, &domain.User{
			TenantID: "tenant-1", Name: "Novo", Email: "Novo@Example.com", PasswordHash: "Senha@123",
		})

		require.NoError(t, err)
		assert.Equal(t, "novo@example.com", user.Email)
		assert.Equal(t, defaultRoleID, user.RoleID)
		assert.Len(t, user.ID, 12)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Senha@123")))
	})

	t.Run("Email duplicado", func(t *testing.T) {
		service, repo := newTestService(t)

		repo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(&domain.User{ID: "u1"}, nil)

		_, err := service.CreateUser(ctx, &domain.User{
			TenantID: "tenant-1", Name: "Ana", Email: "ana@example.com", PasswordHash: "Senha@123",
		})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Senha fraca", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateUser(ctx, &domain.User{
			TenantID: "tenant-1", Name: "Ana", Email: "ana@example.com", PasswordHash: "fraca",
		})

		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("Sem tenant", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "Senha@123"})

		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service, _ := newTestService(t)

	assert.NoError(t, service.ValidatePasswordStrength("Senha@123"))
	assert.Error(t, service.ValidatePasswordStrength("Curta@1"))
	assert.Error(t, service.ValidatePasswordStrength("semmaiuscula@1"))
	assert.Error(t, service.ValidatePasswordStrength("SEMMINUSCULA@1"))
	assert.Error(t, service.ValidatePasswordStrength("SemNumero@"))
	assert.Error(t, service.ValidatePasswordStrength("SemEspecial1"))
}

func TestService_GetUserProfile(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	repo.EXPECT().GetUserByID(ctx, "u1").Return(&domain.User{ID: "u1", PasswordHash: "hash"}, nil)

	user, err := service.GetUserProfile(ctx, "u1")

	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}
