package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/forgo/cuppa/pkg/jwt"
)

func main() {
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to JWT private key")
	publicKeyPath := flag.String("pub", "./keys/public.pem", "Path to JWT public key (written with -generate-keys)")
	generateKeys := flag.Bool("generate-keys", false, "Generate a new RSA key pair before minting")
	userID := flag.String("user", "user:dev", "User ID (token subject)")
	role := flag.String("role", jwt.RoleUser, "Role claim: user or admin")
	issuer := flag.String("issuer", "cuppa", "JWT issuer")
	expMins := flag.Int("exp", 60*24*7, "Token expiration in minutes (default: 7 days)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *role != jwt.RoleUser && *role != jwt.RoleAdmin {
		fmt.Fprintf(os.Stderr, "Invalid role %q: use %s or %s\n", *role, jwt.RoleUser, jwt.RoleAdmin)
		os.Exit(2)
	}

	if *generateKeys {
		if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s and %s\n", *privateKeyPath, *publicKeyPath)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nGenerate keys first with: dev-token -generate-keys\n")
		os.Exit(1)
	}

	token, err := jwtService.Issue(*userID, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"user_id":      *userID,
			"role":         *role,
		})
		return
	}

	fmt.Println("Development Token")
	fmt.Println("=================")
	fmt.Printf("User ID:  %s\n", *userID)
	fmt.Printf("Role:     %s\n", *role)
	fmt.Printf("Expires:  %s\n", time.Now().Add(time.Duration(*expMins)*time.Minute).Format(time.RFC3339))
	fmt.Println()
	fmt.Println(token)
	fmt.Println()
	fmt.Printf("  curl -H 'Authorization: Bearer %s...' http://localhost:8080/v1/recommendations\n", token[:min(len(token), 40)])
}
