package utils

import (
	"jobpay/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ProfileLocalsKey is where the authenticated profile is stored on the
// request context.
const ProfileLocalsKey = "profile"

// GetProfile returns the authenticated caller, if any.
func GetProfile(c *fiber.Ctx) (*models.Profile, bool) {
	profile, ok := c.Locals(ProfileLocalsKey).(*models.Profile)
	return profile, ok && profile != nil
}
