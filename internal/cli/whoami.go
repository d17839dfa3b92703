package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}

		env.store.Rehydrate(cmd.Context())
		snap := env.store.Snapshot()
		if !snap.IsAuthenticated {
			return errors.New("not signed in; run 'crema login'")
		}

		fmt.Printf("%s <%s>\n", snap.User.Name, snap.User.Email)
		return nil
	},
}
