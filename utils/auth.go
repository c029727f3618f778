// utils/auth.go
package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateAccessToken issues a short-lived token carrying identity and role claims.
func GenerateAccessToken(userID, role, employeeID string) (string, error) {
	secret := os.Getenv("ACCESS_TOKEN_SECRET")
	if secret == "" {
		return "", errors.New("ACCESS_TOKEN_SECRET not set")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        userID,
		"role":       role,
		"employeeId": employeeID,
		"exp":        time.Now().Add(AccessTokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken issues a long-lived token carrying only the user ID. The
// issued value is persisted on the user row and must match on refresh.
func GenerateRefreshToken(userID string) (string, error) {
	secret := os.Getenv("REFRESH_TOKEN_SECRET")
	if secret == "" {
		return "", errors.New("REFRESH_TOKEN_SECRET not set")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(RefreshTokenTTL).Unix(),
		"iat": time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseToken validates an HS256 token against the secret in the named env var
// and returns its claims.
func ParseToken(tokenString, secretEnv string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv(secretEnv)), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Auth middleware. Accepts the access token from the accessToken cookie or the
// Authorization header.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("accessToken")
		if err != nil || tokenString == "" {
			tokenString = c.GetHeader("Authorization")
			if len(tokenString) > 7 && strings.EqualFold(tokenString[0:6], "BEARER") {
				tokenString = tokenString[7:]
			}
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "message": "Authorization required"})
			return
		}

		claims, err := ParseToken(tokenString, "ACCESS_TOKEN_SECRET")
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		c.Set("userId", claims["sub"])
		c.Set("role", claims["role"])
		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. Runs after AuthMiddleware.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		roleStr, _ := role.(string)
		for _, a := range allowed {
			if roleStr == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(403, gin.H{"success": false, "message": "You do not have permission"})
	}
}
