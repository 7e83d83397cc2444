// Command token mints a bearer token for local testing of the API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		cfgPath = flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "path to config file")
		userID  = flag.Int64("user", 1, "user id to embed")
		admin   = flag.Bool("admin", false, "issue a staff token")
		ttl     = flag.Duration("ttl", 0, "token lifetime, defaults to auth.token_ttl_minutes")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if *userID < 1 {
		logrus.Fatal("user id must be positive")
	}
	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.Auth.TokenDuration()
	}

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	raw, err := tokens.Issue(access.Identity{UserID: *userID, IsAdmin: *admin}, lifetime)
	if err != nil {
		logrus.Fatalf("issue token: %v", err)
	}
	fmt.Println(raw)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
