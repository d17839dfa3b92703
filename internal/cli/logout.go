package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the API token and clear stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}

		// Teardown is unconditional: even if the server call fails the
		// local credentials are gone when Logout returns.
		env.store.Logout(cmd.Context())
		fmt.Println("Signed out.")
		return nil
	},
}
