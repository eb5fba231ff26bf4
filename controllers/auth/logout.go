package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"
)

// LogoutHandler blacklists the access token's jti until its natural expiry.
// Without Redis this is a no-op on the server side; the client drops the token.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	if authz != "" && strings.HasPrefix(authz, "Bearer ") {
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		if claims, err := utils.ValidateAccessToken(tokenStr); err == nil {
			if jti, ok := claims["jti"].(string); ok && jti != "" {
				var ttl time.Duration
				if expRaw, ok := claims["exp"].(float64); ok {
					ttl = time.Until(time.Unix(int64(expRaw), 0))
				}
				if ttl < 0 {
					ttl = 0
				}
				_ = utils.RevokeJTI(jti, ttl)
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
