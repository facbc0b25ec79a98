// Package auth gives every visitor a guest identity so finished rounds can
// be attributed on the leaderboard. No accounts: a first visit gets a signed
// cookie with a fresh id and a generated name.
package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const cookieName = "Authorization"

type Claims struct {
	ID       string
	Username string
}

// GuestMiddleware ensures the request carries a valid guest token, minting
// one when the cookie is missing or no longer parses. Claims end up on the
// gin context under "claims".
func GuestMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		if cookie, err := c.Cookie(cookieName); err == nil {
			if claims, err := parseToken(cookie, key); err == nil {
				c.Set("claims", claims)
				c.Next()
				return
			} else {
				slog.Warn("Rejecting guest token, issuing a new one", "error", err)
			}
		}

		claims := Claims{
			ID:       uuid.New().String(),
			Username: petname.Generate(2, "-"),
		}
		token, err := signToken(claims, key)
		if err != nil {
			slog.Error("Error signing guest token", slog.Any("error", err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.SetCookie(cookieName, token, 3600*24*365, "/", "", false, true)
		c.Set("claims", claims)
		c.Next()
	}
}

func signToken(claims Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       claims.ID,
		"username": claims.Username,
		"exp":      time.Now().Add(time.Hour * 24 * 365).Unix(),
	})
	signed, err := token.SignedString(key)
	if err != nil {
		return "", err
	}
	return "Bearer " + signed, nil
}

func parseToken(cookie string, key []byte) (Claims, error) {
	raw := strings.TrimPrefix(cookie, "Bearer ")

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return Claims{}, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, fmt.Errorf("invalid token claims")
	}

	id, _ := mapClaims["id"].(string)
	username, _ := mapClaims["username"].(string)
	if id == "" || username == "" {
		return Claims{}, fmt.Errorf("token missing guest identity")
	}
	return Claims{ID: id, Username: username}, nil
}

// FromContext pulls the guest claims the middleware stored.
func FromContext(c *gin.Context) (Claims, error) {
	v, ok := c.Get("claims")
	if !ok {
		return Claims{}, fmt.Errorf("error getting claims")
	}
	claims, ok := v.(Claims)
	if !ok {
		return Claims{}, fmt.Errorf("error converting claims")
	}
	return claims, nil
}
