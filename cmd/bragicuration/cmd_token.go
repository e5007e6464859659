/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/friendsincode/bragi_curation/internal/auth"
)

// Token flags
var (
	tokenUser  string
	tokenRoles []string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a JWT for API access",
	Long: `Signs an HS256 JWT with the configured signing key.

Examples:
  bragicuration token --user alice
  bragicuration token --user ops --role admin --ttl 720h`,
	RunE: runToken,
}

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Generate a static API key",
	Long: `Generates a fresh API key. Prints the plaintext key once and the
sha256 digest to add to BRAGI_API_KEY_HASHES.`,
	RunE: runAPIKey,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(apikeyCmd)

	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User id embedded in the token (required)")
	tokenCmd.Flags().StringSliceVar(&tokenRoles, "role", []string{string(auth.RoleCurator)}, "Roles to grant")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}

func runToken(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	token, err := auth.Issue([]byte(cfg.JWTSigningKey), auth.Claims{
		UserID: tokenUser,
		Roles:  tokenRoles,
	}, tokenTTL)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	fmt.Println(token)
	return nil
}

func runAPIKey(cmd *cobra.Command, args []string) error {
	plaintext, digest, err := auth.GenerateAPIKey()
	if err != nil {
		return fmt.Errorf("generate api key: %w", err)
	}

	fmt.Printf("key:    %s\ndigest: %s\n", plaintext, digest)
	return nil
}
