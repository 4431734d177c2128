// Command budget_token issues a signed bearer token for an owner id, for
// local development against the API. It reads the same environment as the server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/budget_tracker_app/internal/platform/config"
	"github.com/SscSPs/budget_tracker_app/internal/utils"
	"github.com/google/uuid"
)

func main() {
	owner := flag.String("owner", "", "owner id to put in the token subject (random UUID when empty)")
	expiry := flag.Duration("expiry", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	newSecret := flag.Bool("new-secret", false, "print a fresh JWT_SECRET value and exit")
	flag.Parse()

	if *newSecret {
		secret, err := utils.GenerateSigningSecret(32)
		if err != nil {
			slog.Error("Failed to generate secret", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println(secret)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ownerID := *owner
	if ownerID == "" {
		ownerID = uuid.NewString()
	}
	lifetime := cfg.JWTExpiryDuration
	if *expiry > 0 {
		lifetime = *expiry
	}

	token, err := utils.GenerateJWT(ownerID, cfg.JWTSecret, lifetime, cfg.JWTIssuer)
	if err != nil {
		slog.Error("Failed to generate token", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "owner: %s\n", ownerID)
	fmt.Println(token)
}
