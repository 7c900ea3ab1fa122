package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/bbs-service/config"
	"github.com/guttosm/bbs-service/internal/middleware"
	"github.com/spf13/cobra"
)

func generateSecureKey(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Generate a JWT secret and an API key for the .env file",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := generateSecureKey(32)
			if err != nil {
				return fmt.Errorf("generate JWT secret: %w", err)
			}
			apiKey, err := generateSecureKey(24)
			if err != nil {
				return fmt.Errorf("generate API key: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "# Admin bearer tokens are verified with this secret")
			fmt.Fprintf(out, "JWT_SECRET=%s\n", secret)
			fmt.Fprintln(out, "# Optional, comma separated")
			fmt.Fprintf(out, "API_KEYS=%s\n", apiKey)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		secret  string
		subject string
		email   string
		roles   []string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for the admin routes",
		Long:  "Signs an HS256 token with --secret, or JWT_SECRET when the flag is omitted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = config.Load().Auth.JWTSecret
			}
			if secret == "" {
				return errors.New("no signing secret: pass --secret or set JWT_SECRET")
			}
			if subject == "" {
				subject = email
			}

			token, err := middleware.NewToken([]byte(secret), subject, email, roles, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to JWT_SECRET)")
	cmd.Flags().StringVar(&subject, "subject", "", "token subject (defaults to --email)")
	cmd.Flags().StringVar(&email, "email", "", "caller email recorded as the audit actor")
	cmd.Flags().StringSliceVar(&roles, "role", []string{middleware.RoleAdmin}, "granted roles")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
