package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dfmartinez/bodega-api/internal/application/dto"
	"github.com/dfmartinez/bodega-api/internal/domain"
	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/internal/domain/repository"
	"github.com/dfmartinez/bodega-api/pkg/jwt"
)

const minPasswordLen = 5

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login, cambio de contraseña y actividad del usuario. El resto del
// sistema solo recibe el ID del actor ya autenticado; aquí no hay autorización
// por roles.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	batchRepo repository.BatchRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, batchRepo repository.BatchRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, batchRepo: batchRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password con bcrypt y genera el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized // mismo error que contraseña errada, no revela usuarios
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ChangePassword verifica la contraseña actual y fija la nueva (mínimo 5 caracteres).
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	if len(in.NewPassword) < minPasswordLen {
		return domain.NewValidation("new_password", "la contraseña debe tener al menos %d caracteres", minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(userID, string(hash))
}

// Activity estadísticas de actividad: lotes activos y lotes retirados por el usuario.
func (uc *AuthUseCase) Activity(ctx context.Context, userID string) (*dto.ActivityResponse, error) {
	total, err := uc.batchRepo.CountByStatus(entity.BatchStatusActive)
	if err != nil {
		return nil, err
	}
	removed, err := uc.batchRepo.CountRemovedBy(userID)
	if err != nil {
		return nil, err
	}
	return &dto.ActivityResponse{
		TotalBatches:   total,
		RemovedBatches: removed,
		LastActive:     time.Now(),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
