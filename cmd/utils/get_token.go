package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/config"
	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/oauth"
	"github.com/shesho2101/ProyectoIntegrador2/internal/interface/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
)

// Logs in against the Wayra API and prints the session token with its
// decoded claims, for poking at authenticated endpoints by hand.
func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	apiURL := flag.String("api", "", "Wayra API base URL (defaults to WAYRA_API_URL)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: get_token -email you@example.com -password secret [-api URL]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.WayraAPIURL = *apiURL
	}

	api := repository.NewWayraAPI(cfg.WayraAPIURL, cfg.WayraAPITimeout, logger.NewNop(), nil)
	accounts := repository.NewWayraAccountRepository(api)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.WayraAPITimeout)
	defer cancel()

	token, err := accounts.Login(ctx, *email, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Login failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nToken: %s\n", token)

	claims, err := oauth.DecodeClaims(token)
	if err != nil {
		fmt.Printf("Claims: unreadable (%v)\n\n", err)
		return
	}
	fmt.Printf("User ID: %d\n", claims.UserID)
	fmt.Printf("Expires: %s (in %s)\n\n", claims.ExpiresAt.Format(time.RFC3339), time.Until(claims.ExpiresAt).Round(time.Second))
}
