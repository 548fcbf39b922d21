package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campuspool/internal/models"
	"campuspool/internal/repository"
	"campuspool/pkg"
	"campuspool/shared/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type AuthService struct {
	users      *repository.UserRepository
	jwtService *jwt.JWTService
	sessions   *redis.Client

	allowedEmailDomain string
}

func NewAuthService(users *repository.UserRepository, jwtService *jwt.JWTService, sessions *redis.Client, allowedEmailDomain string) *AuthService {
	return &AuthService{
		users:              users,
		jwtService:         jwtService,
		sessions:           sessions,
		allowedEmailDomain: strings.ToLower(allowedEmailDomain),
	}
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Role     models.UserRole
}

type AuthResult struct {
	Token string
	User  *models.User
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !strings.HasSuffix(email, s.allowedEmailDomain) {
		return nil, ErrInvalidEmailDomain
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := pkg.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:                 uuid.New(),
		Email:              email,
		HashedPassword:     hashedPassword,
		Name:               in.Name,
		Role:               in.Role,
		VerificationStatus: models.VerificationUnverified,
		IsActive:           true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, ErrInternalServer
	}

	return s.openSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := pkg.CheckPassword(user.HashedPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive && !user.IsAdmin {
		return nil, ErrAccountDisabled
	}

	return s.openSession(ctx, user)
}

func (s *AuthService) openSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	tokenData, err := s.jwtService.GenerateToken(user.ID.String())
	if err != nil {
		return nil, ErrInternalServer
	}

	err = s.sessions.Set(ctx, sessionKey(user.ID.String()), tokenData.JTI, 0).Err()
	if err != nil {
		return nil, ErrInternalServer
	}

	return &AuthResult{Token: tokenData.SignedToken, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.Del(ctx, sessionKey(userID.String())).Err(); err != nil {
		return ErrInternalServer
	}
	return nil
}

// ResolveToken validates a bearer token, checks the session jti is still
// current and returns the authenticated user. Disabled accounts are
// rejected unless they belong to an admin.
func (s *AuthService) ResolveToken(ctx context.Context, tokenStr string) (*models.User, error) {
	claims, err := s.jwtService.Validate(tokenStr)
	if err != nil {
		return nil, ErrSessionExpired
	}

	currentJTI, err := s.sessions.Get(ctx, sessionKey(claims.UserID)).Result()
	if err != nil || currentJTI != claims.JTI {
		return nil, ErrSessionExpired
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrSessionExpired
	}
	if !user.IsActive && !user.IsAdmin {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// SeedAdmin creates the bootstrap admin account when it does not exist yet.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := pkg.HashPassword(password)
	if err != nil {
		return err
	}

	return s.users.Create(ctx, &models.User{
		ID:                 uuid.New(),
		Email:              email,
		HashedPassword:     hashedPassword,
		Name:               "Admin",
		Role:               models.RoleAdmin,
		IsAdmin:            true,
		VerificationStatus: models.VerificationVerified,
		IsActive:           true,
	})
}

func sessionKey(userID string) string {
	return "session:" + userID
}
