// Command nowplaying queries and controls the media currently playing on
// this machine.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	mediasession "github.com/nowplaying-org/media-session"
	"github.com/nowplaying-org/media-session/api/config"
)

var (
	debug      bool
	playerName string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "nowplaying",
	Short: "Query and control the currently playing media",
	Long: `nowplaying exposes the media currently playing on this machine through
the platform's native media-control facility: the system media transport
controls on Windows, or MPRIS over the session bus on Linux.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

		level := zerolog.InfoLevel
		if debug {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)

		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&playerName, "player", "", "preferred player name (MPRIS bus name suffix, Linux only)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", config.DefaultCallTimeout, "per-call timeout for platform facility calls")
}

// newSession binds a media session using the global flags.
func newSession(ctx context.Context) (*mediasession.MediaSession, error) {
	cfg := config.Default()
	cfg.PlayerName = playerName
	cfg.CallTimeout = timeout
	cfg.Logger = log.Logger

	return mediasession.New(ctx, cfg)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
