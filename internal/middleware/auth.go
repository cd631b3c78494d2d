// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"errors"
	"strconv"
	"strings"

	"jobpay/internal/services/auth"
	"jobpay/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProfileHeader names a profile directly when header identity is enabled.
const ProfileHeader = "profile_id"

// ProfileMiddleware resolves the calling profile and stores it on the
// request context.
type ProfileMiddleware struct {
	authService auth.Service
	allowHeader bool
	logger      *zap.Logger
}

func NewProfileMiddleware(authService auth.Service, allowHeader bool, logger *zap.Logger) *ProfileMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileMiddleware{
		authService: authService,
		allowHeader: allowHeader,
		logger:      logger,
	}
}

// Handler accepts a bearer token, or the profile_id header when enabled.
// A bearer token takes precedence when both are sent.
func (m *ProfileMiddleware) Handler(c *fiber.Ctx) error {
	ctx := c.UserContext()
	authHeader := c.Get(fiber.HeaderAuthorization)

	switch {
	case authHeader != "":
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.Unauthorized(c, "invalid authorization format")
		}
		profile, err := m.authService.AuthenticateToken(ctx, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return m.reject(c, err)
		}
		c.Locals(utils.ProfileLocalsKey, profile)

	case m.allowHeader && c.Get(ProfileHeader) != "":
		id, err := strconv.ParseUint(c.Get(ProfileHeader), 10, 64)
		if err != nil || id == 0 {
			return utils.Unauthorized(c, "invalid profile_id header")
		}
		profile, err := m.authService.AuthenticateID(ctx, uint(id))
		if err != nil {
			return m.reject(c, err)
		}
		c.Locals(utils.ProfileLocalsKey, profile)

	default:
		return utils.Unauthorized(c, "missing credentials")
	}

	return c.Next()
}

func (m *ProfileMiddleware) reject(c *fiber.Ctx, err error) error {
	if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrUnknownProfile) {
		return utils.Unauthorized(c, err.Error())
	}
	m.logger.Error("profile resolution failed", zap.Error(err))
	return utils.InternalError(c, "failed to resolve profile")
}
