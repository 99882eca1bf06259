// Package auth implements login, session introspection and staff account creation.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/access"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
	"github.com/jhoicas/rhu-inventory-api/pkg/jwt"
)

const minPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, sesión y alta de usuarios.
type AuthUseCase struct {
	users  repository.UserRepository
	units  repository.UnitRepository
	clock  ports.Clock
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, units repository.UnitRepository, clock ports.Clock, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, units: units, clock: clock, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario con password hasheado (bcrypt). ErrDuplicate si el username existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password", "must be at least 8 characters")
	}
	if !access.IsValidRole(in.Role) {
		return nil, domain.NewValidationError("role", "unknown role")
	}
	if in.UnitID != "" {
		if _, err := uc.units.GetByID(ctx, in.UnitID); err != nil {
			return nil, err
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = username
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		UnitID:       in.UnitID,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica usuario/password, genera el JWT y devuelve token, usuario y capacidades.
// Usuario inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(in.Username)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.UnitID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:        token,
		User:         *toUserResponse(user),
		Capabilities: access.CapabilitiesOf(user.Role),
	}, nil
}

// Me describe la sesión actual.
func (uc *AuthUseCase) Me(userID, role, unitID string) *dto.MeResponse {
	return &dto.MeResponse{
		UserID:       userID,
		Role:         role,
		UnitID:       unitID,
		Capabilities: access.CapabilitiesOf(role),
	}
}

// Menu devuelve el árbol de navegación filtrado por las capacidades del rol.
func (uc *AuthUseCase) Menu(role string) *dto.MenuResponse {
	return &dto.MenuResponse{Role: role, Items: access.MenuFor(role)}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		UnitID:    u.UnitID,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
