package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nowplaying-org/media-session/api/media"
)

var seekOffset time.Duration

// controlCommand wraps a transport control call in a one-shot command.
func controlCommand(use, short string, invoke func(media.Controls) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer session.Close()

			return invoke(session.Controls())
		},
	}
}

func init() {
	rootCmd.AddCommand(
		controlCommand("play", "Start or resume playback", media.Controls.Play),
		controlCommand("pause", "Pause playback", media.Controls.Pause),
		controlCommand("toggle", "Toggle between playing and paused", media.Controls.TogglePlayPause),
		controlCommand("stop", "Stop playback", media.Controls.Stop),
		controlCommand("next", "Skip to the next track", media.Controls.Next),
		controlCommand("previous", "Skip to the previous track", media.Controls.Previous),
	)

	seekCmd := controlCommand("seek", "Seek by a relative offset", func(c media.Controls) error {
		return c.Seek(seekOffset.Microseconds())
	})
	seekCmd.Flags().DurationVar(&seekOffset, "offset", 10*time.Second, "seek offset (negative seeks backwards)")

	rootCmd.AddCommand(seekCmd)
}
