// Package auth resolves request credentials to profiles and issues
// development tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobpay/internal/models"
	"jobpay/internal/repositories"
	"jobpay/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownProfile     = errors.New("unknown profile")
)

type Service interface {
	IssueToken(profile *models.Profile) (string, error)
	// AuthenticateToken verifies a bearer token and loads its profile.
	AuthenticateToken(ctx context.Context, token string) (*models.Profile, error)
	// AuthenticateID loads a profile named directly by id.
	AuthenticateID(ctx context.Context, id uint) (*models.Profile, error)
}

type service struct {
	profiles repositories.ProfileRepository
	secret   string
	ttl      time.Duration
}

func NewService(profiles repositories.ProfileRepository, secret string, ttl time.Duration) Service {
	if profiles == nil {
		panic("profile repository is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &service{
		profiles: profiles,
		secret:   secret,
		ttl:      ttl,
	}
}

func (s *service) IssueToken(profile *models.Profile) (string, error) {
	return utils.GenerateToken(profile, s.secret, s.ttl)
}

func (s *service) AuthenticateToken(ctx context.Context, token string) (*models.Profile, error) {
	claims, err := utils.ParseToken(token, s.secret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.AuthenticateID(ctx, claims.ProfileID)
	if err != nil {
		return nil, err
	}
	// roles are immutable, so a mismatch means the token was not minted
	// for this profile
	if claims.Role != "" && claims.Role != profile.Type {
		return nil, ErrInvalidCredentials
	}
	return profile, nil
}

func (s *service) AuthenticateID(ctx context.Context, id uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrUnknownProfile
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}
