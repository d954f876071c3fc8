package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"luxe-commerce/config"
)

type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ReceiptClaims is the payload of a signed receipt-view URL. Subject holds
// the storage path of the receipt file.
type ReceiptClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

const receiptScope = "receipt"

func GenerateToken(userID int, email, role string) (string, error) {
	expiry, err := time.ParseDuration(config.AppConfig.JWTExpiry)
	if err != nil {
		expiry = 24 * time.Hour
	}

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GenerateReceiptToken mints a time-limited token granting read access to
// one stored receipt file.
func GenerateReceiptToken(path string, ttl time.Duration) (string, error) {
	claims := ReceiptClaims{
		Scope: receiptScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   path,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateReceiptToken returns the storage path the token grants access to.
func ValidateReceiptToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ReceiptClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*ReceiptClaims)
	if !ok || !token.Valid || claims.Scope != receiptScope || claims.Subject == "" {
		return "", errors.New("invalid receipt token")
	}
	return claims.Subject, nil
}
