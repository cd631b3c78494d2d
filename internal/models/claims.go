package models

import "github.com/golang-jwt/jwt/v5"

// ProfileClaims identifies the calling profile in a bearer token.
type ProfileClaims struct {
	jwt.RegisteredClaims
	ProfileID uint `json:"profile_id"`
	Role      Role `json:"role"`
}
