package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dfmartinez/bodega-api/internal/application/auth"
	"github.com/dfmartinez/bodega-api/internal/application/dto"
	"github.com/dfmartinez/bodega-api/internal/domain"
	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

const (
	testUserID   = "00000000-0000-0000-0000-000000000001"
	testPassword = "secreto1"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePassword(id, hash string) error {
	r.users[id].PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) Count() (int, error) { return len(r.users), nil }

type fakeCounts struct {
	repository.BatchRepository
	active  int
	removed map[string]int
}

func (f *fakeCounts) CountByStatus(status string) (int, error) { return f.active, nil }

func (f *fakeCounts) CountRemovedBy(userID string) (int, error) { return f.removed[userID], nil }

func newAuthUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeUserRepo{users: map[string]*entity.User{
		testUserID: {
			ID:           testUserID,
			Username:     "almacenero",
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		},
	}}
	counts := &fakeCounts{active: 12, removed: map[string]int{testUserID: 3}}
	uc := auth.NewAuthUseCase(users, counts, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "bodega-api-test",
	})
	return uc
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc := newAuthUseCase(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Username: "almacenero",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, testUserID, resp.User.ID)
	assert.Equal(t, "almacenero", resp.User.Username)
}

// Usuario inexistente y contraseña errada producen el mismo error: el login no
// revela qué usuarios existen.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuthUseCase(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "almacenero", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "no-existe", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	uc := newAuthUseCase(t)
	ctx := context.Background()

	// Contraseña actual errada
	err := uc.ChangePassword(ctx, testUserID, dto.ChangePasswordRequest{
		CurrentPassword: "errada", NewPassword: "nuevaclave",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Nueva demasiado corta
	err = uc.ChangePassword(ctx, testUserID, dto.ChangePasswordRequest{
		CurrentPassword: testPassword, NewPassword: "abc",
	})
	_, ok := domain.AsValidation(err)
	assert.True(t, ok, "contraseña corta debe ser ValidationError")

	// Cambio válido: el login funciona con la nueva y falla con la vieja
	err = uc.ChangePassword(ctx, testUserID, dto.ChangePasswordRequest{
		CurrentPassword: testPassword, NewPassword: "nuevaclave",
	})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "almacenero", Password: "nuevaclave"})
	assert.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "almacenero", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	uc := newAuthUseCase(t)
	_, err := uc.Me(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestActivity(t *testing.T) {
	uc := newAuthUseCase(t)

	resp, err := uc.Activity(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.TotalBatches)
	assert.Equal(t, 3, resp.RemovedBatches)
}
