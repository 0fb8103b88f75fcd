package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookie = "sid"
	sidLocal      = "sid"
	sessionTTL    = 365 * 24 * time.Hour
)

type SessionConfig struct {
	Secret []byte
	Secure bool
}

// RandomSecret is used when no SESSION_SECRET is configured. Cookies issued
// with it stop verifying after a restart.
func RandomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return []byte(hex.EncodeToString(b))
}

// Session makes sure every request carries an anonymous sid. A missing,
// forged or expired cookie gets a fresh sid issued in its place.
func Session(cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid, ok := parseSID(c.Cookies(SessionCookie), cfg.Secret); ok {
			c.Locals(sidLocal, sid)
			return c.Next()
		}

		sid := uuid.NewString()
		token, err := signSID(sid, cfg.Secret, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to issue session")
		}
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(sessionTTL / time.Second),
			HTTPOnly: true,
			Secure:   cfg.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(sidLocal, sid)
		return c.Next()
	}
}

// SID returns the caller's anonymous identifier set by Session.
func SID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sidLocal).(string)
	return sid
}

func signSID(sid string, secret []byte, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseSID(raw string, secret []byte) (string, bool) {
	if raw == "" {
		return "", false
	}
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(
		raw,
		&claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return "", false
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", false
	}
	return claims.Subject, true
}
