package services

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"outreach-backend/internal/auth"
	"outreach-backend/internal/models"
	"outreach-backend/internal/repositories"
)

// DefaultPassword is assigned to new and reset accounts. Staff are told to
// change it on first login.
const DefaultPassword = "123456"

type AuthService struct {
	Profiles *repositories.ProfileRepository
	JWT      *auth.JWTManager
}

func NewAuthService(profiles *repositories.ProfileRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{Profiles: profiles, JWT: jwtManager}
}

// Login verifies phone and password and returns a bearer token with the
// profile. The error is deliberately identical for an unknown phone and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.Profile, error) {
	if !IsValidMobile(req.Phone) {
		return "", nil, validationErr("invalid mobile number")
	}
	if req.Password == "" {
		return "", nil, validationErr("password is required")
	}

	profile, err := s.Profiles.GetByPhone(ctx, req.Phone)
	if err != nil {
		return "", nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, ErrUnauthorized
	}

	token, err := s.JWT.Generate(profile.ID, profile.Phone, profile.Role, profile.Team)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	if err := s.Profiles.TouchLastLogin(ctx, profile.ID, now); err != nil {
		log.Printf("[Auth] Failed to record last login for user %d: %v", profile.ID, err)
	}
	profile.LastLogin = &now

	log.Printf("[Auth] %s (%s, %s) logged in", profile.Name, profile.Role, profile.Team)
	return token, profile, nil
}

// Me returns the caller's live profile.
func (s *AuthService) Me(ctx context.Context, userID int) (*models.Profile, error) {
	return s.Profiles.GetByID(ctx, userID)
}

// ChangePassword rotates the caller's own password after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	if len(req.NewPassword) < 6 {
		return validationErr("new password must be at least 6 characters")
	}

	profile, err := s.Profiles.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Profiles.UpdatePassword(ctx, userID, string(hash))
}
