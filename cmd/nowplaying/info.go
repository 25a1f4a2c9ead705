package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/ugorji/go/codec"
)

var pollInterval time.Duration

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the currently playing media as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		session, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer session.Close()

		var handle codec.JsonHandle
		handle.Indent = 2

		enc := codec.NewEncoder(os.Stdout, &handle)

		for {
			info, err := session.Info()
			if err != nil {
				return err
			}

			if err := enc.Encode(info); err != nil {
				return err
			}
			fmt.Println()

			if pollInterval <= 0 {
				return nil
			}

			select {
			case <-ctx.Done():
				return nil

			case <-time.After(pollInterval):
			}
		}
	},
}

func init() {
	infoCmd.Flags().DurationVar(&pollInterval, "poll", 0, "repeat the query at this interval until interrupted")
	rootCmd.AddCommand(infoCmd)
}
