package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/frahmantamala/asset-management/internal"
)

// Service is the main auth service with dependencies
type Service struct {
	userRepo       RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger
}

// NewService creates a new auth service
func NewService(userRepo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// NewJWTTokenGenerator creates a JWT token generator from the security config.
func NewJWTTokenGenerator(secret, issuer, audience string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		Issuer:   issuer,
		Audience: audience,
		TokenTTL: ttl,
	}
}

// Register creates a new account with role User and issues a token for it.
func (s *Service) Register(dto RegisterDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := NormalizedEmail(dto.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to create account", err)
	}

	userID, err := s.userRepo.CreateUser(email, string(hash), RoleUser)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("registration rejected: email already exists", "email", email)
			return nil, internal.ErrDuplicateEmail
		}
		s.logger.Error("failed to create user", "error", err, "email", email)
		return nil, err
	}

	token, err := s.tokenGenerator.GenerateToken(userID, email, RoleUser)
	if err != nil {
		s.logger.Error("failed to issue token after registration", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("user registered", "user_id", userID, "email", email)

	return &AuthResponse{
		Token:  token,
		Email:  email,
		Role:   RoleUser,
		UserID: userID,
	}, nil
}

// Authenticate verifies credentials and issues a token. Unknown email and
// wrong password return the same error so callers cannot enumerate accounts.
func (s *Service) Authenticate(dto LoginDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := NormalizedEmail(dto.Email)

	creds, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(creds.ID, creds.Email, creds.Role)
	if err != nil {
		s.logger.Error("failed to issue token", "error", err, "user_id", creds.ID)
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("user authenticated", "user_id", creds.ID, "email", creds.Email)

	return &AuthResponse{
		Token:  token,
		Email:  creds.Email,
		Role:   creds.Role,
		UserID: creds.ID,
	}, nil
}

// ValidateToken validates a bearer token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GenerateToken creates a signed, self-contained bearer token carrying the
// subject id, email and role.
func (j *JWTTokenGenerator) GenerateToken(userID int64, email, role string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: strconv.FormatInt(userID, 10),
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    j.Issuer,
			Audience:  jwt.ClaimStrings{j.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithAudience(j.Audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

// UserFromClaims builds the context identity from validated claims.
func UserFromClaims(claims *Claims) *User {
	var uid int64
	if claims.UserID != "" {
		if parsed, err := strconv.ParseInt(claims.UserID, 10, 64); err == nil {
			uid = parsed
		}
	}
	return &User{
		ID:    uid,
		Email: claims.Email,
		Role:  claims.Role,
	}
}
