package dto

import (
	"time"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/access"
)

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	UnitID    string    `json:"unit_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token        string       `json:"token"`
	User         UserResponse `json:"user"`
	Capabilities []string     `json:"capabilities"`
}

// MeResponse is the current session as seen by the server.
type MeResponse struct {
	UserID       string   `json:"user_id"`
	Role         string   `json:"role"`
	UnitID       string   `json:"unit_id,omitempty"`
	Capabilities []string `json:"capabilities"`
}

// RegisterRequest body para POST /api/auth/users.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	UnitID   string `json:"unit_id,omitempty"`
}

// MenuResponse is the navigation tree visible to the session's role.
type MenuResponse struct {
	Role  string            `json:"role"`
	Items []access.MenuItem `json:"items"`
}
