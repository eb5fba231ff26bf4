package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
)

// RedisClient is an optional shared Redis client used for token revocation and
// login lockout. It will be nil when REDIS_ADDR is not configured.
var RedisClient *redis.Client

// InitRedis connects the shared client. Called from main after the .env merge
// so REDIS_ADDR set only in .env still takes effect.
func InitRedis() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	addr = strings.ReplaceAll(addr, " ", "")
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		// don't fail startup for redis issues; revocation is simply skipped
		return
	}
	RedisClient = rc
}

type contextKey string

const UserKey = contextKey("user")
const RequestIDKey = contextKey("requestID")

// AccessTokenTTL is the session token lifetime. The admin flag inside the
// token is advisory only; the middleware re-reads the user row per request.
const AccessTokenTTL = 7 * 24 * time.Hour

// GenerateAccessToken mints a signed session token embedding the user's id,
// email, username and admin flag.
func GenerateAccessToken(userID uint, email, username string, isAdmin bool) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(32)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"id":       userID,
		"email":    email,
		"username": username,
		"admin":    isAdmin,
		"exp":      now.Add(AccessTokenTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      jti,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken parses and validates a token and checks the jti
// blacklist when Redis is configured.
func ValidateAccessToken(tokenStr string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Require exact HS256 algorithm to avoid algorithm confusion.
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token expired")
		}
		return nil, errors.New("invalid token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	if jtiRaw, ok := claims["jti"].(string); ok && jtiRaw != "" && RedisClient != nil {
		res, err := RedisClient.Get(context.Background(), "jwt:blacklist:"+jtiRaw).Result()
		if err == nil && res == "1" {
			return nil, errors.New("token revoked")
		}
		// ignore redis errors (do not fail auth due to redis outage)
	}

	return claims, nil
}

// ClaimUserID extracts the user id claim, tolerating the numeric types JSON
// round-trips produce.
func ClaimUserID(claims jwt.MapClaims) (uint, bool) {
	rawID, ok := claims["id"]
	if !ok {
		return 0, false
	}
	switch v := rawID.(type) {
	case float64:
		return uint(v), true
	case int:
		return uint(v), true
	case string:
		var n uint64
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return 0, false
		}
		return uint(n), true
	default:
		return 0, false
	}
}

// minBlacklistTTL bounds revocation entries from below: a zero TTL would tell
// Redis to keep the key forever.
const minBlacklistTTL = time.Minute

// RevokeJTI blacklists a token id until its natural expiry. No-op without Redis.
func RevokeJTI(jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("empty jti")
	}
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Set(context.Background(), "jwt:blacklist:"+jti, "1", blacklistTTL(ttl)).Err()
}

// blacklistTTL clamps a revocation TTL to at least minBlacklistTTL. Covers
// tokens whose exp claim is missing or already past.
func blacklistTTL(ttl time.Duration) time.Duration {
	if ttl < minBlacklistTTL {
		return minBlacklistTTL
	}
	return ttl
}

// generateJTI creates a URL-safe random identifier used as JWT ID
func generateJTI(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = hex[int(b[i])%len(hex)]
	}
	return string(out), nil
}
