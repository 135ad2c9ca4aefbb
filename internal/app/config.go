package app

import (
	"time"

	"github.com/harborlegal/practice-backend/internal/platform/envutil"
)

type Config struct {
	Port         string
	JWTSecretKey string

	// Default lifetime of a freshly issued client form link. Staff can
	// override per form.
	FormLinkTTL time.Duration
}

func LoadConfig() Config {
	ttlDays := envutil.Int("FORM_LINK_TTL_DAYS", 30)
	return Config{
		Port:         envutil.String("PORT", "8080"),
		JWTSecretKey: envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		FormLinkTTL:  time.Duration(ttlDays) * 24 * time.Hour,
	}
}
