// Package cli wires the cobra commands for the alwaysgreen binary.
package cli

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alwaysgreen/alwaysgreen/internal/config"
	"github.com/alwaysgreen/alwaysgreen/internal/logger"
	"github.com/alwaysgreen/alwaysgreen/internal/teams"
)

var (
	// version is set by goreleaser ldflags.
	version = "dev"

	// verbose enables debug logging.
	verbose bool

	// cfgPath overrides the default config file location.
	cfgPath string
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "alwaysgreen",
	Short: "Keep your Microsoft Teams presence pinned to Available",
	Long: `Alwaysgreen periodically re-asserts your Microsoft Teams presence so it
never drifts to Away. It signs in with your Microsoft account (device code
for personal accounts, username/password for work accounts) and renews
tokens silently for as long as it runs.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.alwaysgreen/config.toml)")

	// Use PersistentPreRunE to set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}

// configPath returns the explicit --config value or the default location.
func configPath() (string, error) {
	if cfgPath != "" {
		return cfgPath, nil
	}
	return config.DefaultPath()
}

// newSession loads the config and builds a session for it. Organizational
// accounts with no configured password are prompted once on the terminal;
// personal accounts sign in via device code and need none.
func newSession(ctx context.Context) (*teams.Session, config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, config.Config{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, config.Config{}, err
	}

	session := teams.NewSession(cfg.Email, cfg.Password)
	if cfg.Password == "" && session.AccountKind(ctx) == teams.AccountOrganizational {
		password, err := promptPassword(cfg.Email)
		if err != nil {
			return nil, config.Config{}, err
		}
		cfg.Password = password
		// Identity is immutable per session; start over with the full
		// credential.
		session = teams.NewSession(cfg.Email, cfg.Password)
	}

	return session, cfg, nil
}

func promptPassword(email string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("no password configured for %s and stdin is not a terminal", email)
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", email)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}
