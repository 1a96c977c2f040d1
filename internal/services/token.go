package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// TokenClaims is the identity a session token carries.
type TokenClaims struct {
	UserID string
	Email  string
}

// GenerateToken issues a signed HS256 session token for the given user.
// Expiry comes from jwt.expiry_hours, defaulting to one hour.
func GenerateToken(userID, email string) (string, error) {
	expiryHours := viper.GetInt("jwt.expiry_hours")
	if expiryHours <= 0 {
		expiryHours = 1
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(expiryHours) * time.Hour).Unix(),
	})

	return token.SignedString([]byte(viper.GetString("jwt.secret_key")))
}

// VerifyToken checks signature and expiry and returns the embedded claims.
// Every failure mode collapses to ErrInvalidToken; callers treat it as
// "unauthenticated", never as a crash.
func VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(viper.GetString("jwt.secret_key")), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{UserID: userID, Email: email}, nil
}
