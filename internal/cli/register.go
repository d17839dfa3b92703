package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}

		name, err := promptLine("Name: ")
		if err != nil {
			return err
		}
		email, err := promptLine("Email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirmation, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}

		result := env.store.Register(cmd.Context(), name, email, password, confirmation)
		if !result.Success {
			for field, msgs := range result.Details {
				for _, msg := range msgs {
					fmt.Printf("  %s: %s\n", field, msg)
				}
			}
			return errors.New(result.Error)
		}

		snap := env.store.Snapshot()
		fmt.Printf("Account created; signed in as %s\n", snap.User.Email)
		return nil
	},
}
