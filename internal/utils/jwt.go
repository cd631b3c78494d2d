package utils

import (
	"errors"
	"strconv"
	"time"

	"jobpay/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "jobpay-api"

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken signs an access token identifying profile.
func GenerateToken(profile *models.Profile, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret not configured")
	}

	now := time.Now()
	claims := models.ProfileClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(profile.ID), 10),
		},
		ProfileID: profile.ID,
		Role:      profile.Type,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken parses and validates a JWT token string.
func ParseToken(tokenStr, secret string) (*models.ProfileClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.ProfileClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*models.ProfileClaims)
	if !ok || !token.Valid || claims.ProfileID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
