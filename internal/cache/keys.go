package cache

import (
	"fmt"
	"strings"
	"time"
)

const (
	revokedTokenKeyPrefix = "revoked_jti:%s"
	userIDKeyPrefix       = "user_id:%s"
)

// UserIDTTL bounds how long a username to id mapping is served from cache.
const UserIDTTL = 5 * time.Minute

// RevokedTokenKey is the key marking a JWT id as logged out.
func RevokedTokenKey(jti string) string {
	return fmt.Sprintf(revokedTokenKeyPrefix, jti)
}

// UserIDKey caches the id owning username. Usernames are case-sensitive.
func UserIDKey(username string) string {
	return fmt.Sprintf(userIDKeyPrefix, strings.TrimSpace(username))
}
