package main

import (
	"fmt"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/credential"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newLoginIDCmd() *cobra.Command {
	var (
		prefix    string
		firstName string
		lastName  string
		year      int
		serial    int
	)

	cmd := &cobra.Command{
		Use:     "login-id",
		Short:   "Print the login id an employee would receive",
		Example: "  dayflowctl login-id --prefix OI --first John --last Doe --year 2022 --serial 1",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serial < 1 {
				return fmt.Errorf("--serial must be at least 1")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), credential.GenerateLoginID(prefix, firstName, lastName, year, serial))
			return err
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Company prefix (required)")
	cmd.Flags().StringVar(&firstName, "first", "", "First name (required)")
	cmd.Flags().StringVar(&lastName, "last", "", "Last name (required)")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Joining year")
	cmd.Flags().IntVar(&serial, "serial", 1, "Joining serial within company and year")
	_ = cmd.MarkFlagRequired("prefix")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	return cmd
}

type passwordOutput struct {
	Password string `json:"password"`
	Hash     string `json:"bcrypt_hash,omitempty"`
}

func newPasswordCmd() *cobra.Command {
	var (
		length int
		hash   bool
	)

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Generate a temporary password, optionally with its bcrypt hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := credential.GenerateRandomPassword(length)
			if err != nil {
				return err
			}
			out := passwordOutput{Password: password}
			if hash {
				hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
				if err != nil {
					return fmt.Errorf("failed to hash password: %w", err)
				}
				out.Hash = string(hashed)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().IntVar(&length, "length", credential.DefaultPasswordLength, "Password length")
	cmd.Flags().BoolVar(&hash, "hash", false, "Also print the bcrypt hash")
	return cmd
}
