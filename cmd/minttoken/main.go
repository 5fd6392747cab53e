// Command minttoken prints a bearer token for a demo marketplace user.
//
//	minttoken --user-id 5 --name "Global Tobacco Inc." --role buyer
package main

import (
	"fmt"
	"os"
	"time"

	"tobacco-auction/internal/auth"
	"tobacco-auction/internal/config"
	"tobacco-auction/internal/models"

	flag "github.com/spf13/pflag"
)

func main() {
	userID := flag.Int64("user-id", 0, "user id carried in the token")
	name := flag.String("name", "", "display name")
	role := flag.String("role", string(models.RoleBuyer), "one of buyer, trader, timb_officer, admin, other")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to TOBACCO_JWT_EXPIRATION_MINUTES")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	r := models.Role(*role)
	if !r.IsValid() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	jwtCfg := cfg.JWT
	if *ttl > 0 {
		jwtCfg.ExpirationMinutes = int((*ttl + time.Minute - 1) / time.Minute)
	}

	token, err := auth.MintAccessToken(jwtCfg, time.Now(), models.User{ID: *userID, DisplayName: *name, Role: r})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mint: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
