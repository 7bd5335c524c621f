package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*AuthResponse, error)
	Authenticate(dto LoginDTO) (*AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type RepositoryAPI interface {
	CreateUser(email, passwordHash, role string) (int64, error)
	GetByEmail(email string) (*Credentials, error)
}

type TokenGeneratorAPI interface {
	GenerateToken(userID int64, email, role string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// User is the authenticated identity carried in request context. It is built
// from validated token claims alone; no session lookup happens per request.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Credentials is the stored identity row needed to verify a login.
type Credentials struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
}

// AuthResponse is returned from both register and login.
type AuthResponse struct {
	Token  string `json:"token"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	UserID int64  `json:"userId"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret   []byte
	Issuer   string
	Audience string
	TokenTTL time.Duration
}
