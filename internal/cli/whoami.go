package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alwaysgreen/alwaysgreen/internal/teams"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Classify the configured account and show where presence will be sent",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		session, cfg, err := newSession(ctx)
		if err != nil {
			return err
		}

		kind := session.AccountKind(ctx)
		fmt.Printf("email:   %s\n", cfg.Email)
		fmt.Printf("account: %s\n", kind)

		switch kind {
		case teams.AccountOrganizational:
			tenant := session.TenantID(ctx)
			if tenant == "" {
				fmt.Println("tenant:  (not found)")
			} else {
				fmt.Printf("tenant:  %s\n", tenant)
			}
			fmt.Println("host:    presence.teams.microsoft.com")
		case teams.AccountPersonal:
			fmt.Println("host:    presence.teams.live.com")
		default:
			return teams.ErrUnknownAccount
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the alwaysgreen version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(versionCmd)
}
