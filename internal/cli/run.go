package cli

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alwaysgreen/alwaysgreen/internal/config"
	"github.com/alwaysgreen/alwaysgreen/internal/logger"
	"github.com/alwaysgreen/alwaysgreen/internal/scheduler"
	"github.com/alwaysgreen/alwaysgreen/internal/teams"
)

var (
	runOnce         bool
	runWatch        bool
	runActivity     string
	runAvailability string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Assert presence now and keep re-asserting it on an interval",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		session, cfg, err := newSession(ctx)
		if err != nil {
			return err
		}

		if cfg.LogFile != "" {
			if err := logger.SetOutputFile(cfg.LogFile); err != nil {
				return err
			}
		}
		log := logger.Get()

		// The watcher swaps the session when credentials change on disk;
		// the cycle below takes the current one under the same lock.
		var mu sync.Mutex
		if runWatch {
			path, err := configPath()
			if err != nil {
				return err
			}
			go watchConfig(ctx, path, func(next config.Config) {
				mu.Lock()
				session = teams.NewSession(next.Email, next.Password)
				mu.Unlock()
				log.Info().Str("email", next.Email).Msg("config reloaded, session reset")
			})
		}

		cycle := func(cycleCtx context.Context) {
			mu.Lock()
			s := session
			mu.Unlock()

			ok, err := s.SetActivity(cycleCtx, runActivity, runAvailability)
			if !ok {
				log.Error().Err(err).Msg("presence update failed")
				return
			}
			log.Info().Str("availability", runAvailability).Msg("activity updated")
		}

		if runOnce {
			cycle(ctx)
			return nil
		}

		scheduler.New(cfg.Interval()).Run(ctx, cycle)
		return nil
	},
}

func watchConfig(ctx context.Context, path string, onChange func(config.Config)) {
	if err := config.Watch(ctx, path, onChange); err != nil && ctx.Err() == nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("config watch stopped")
	}
}

func init() {
	runCmd.Flags().BoolVar(&runOnce, "once", false, "set presence a single time and exit")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "reload credentials when the config file changes")
	runCmd.Flags().StringVar(&runActivity, "activity", "Available", "activity to assert")
	runCmd.Flags().StringVar(&runAvailability, "availability", "Available", "availability to assert")
	rootCmd.AddCommand(runCmd)
}
