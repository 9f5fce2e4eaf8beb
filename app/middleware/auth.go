package appMiddleware

import (
	"os"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "userID"
const UserPlanKey contextKey = "userPlan"

// Claims carries the authenticated caller identity and plan tier used for
// request attribution.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Plan   string `json:"plan"`
	jwt.RegisteredClaims
}

var JwtSecretKey = []byte(secretFromEnv())

func secretFromEnv() string {
	if s := os.Getenv("JWT_SECRET_KEY"); s != "" {
		return s
	}
	return "dev-secret-change-me"
}
