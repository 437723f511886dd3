package main

import (
	"github.com/spf13/cobra"

	"github.com/mmcdole/kinoart/internal/adapter"
	"github.com/mmcdole/kinoart/internal/features"
)

func newFeaturesCmd() *cobra.Command {
	var env features.Environment

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Show the playback features a client supports",
		Long: "Detects picture-in-picture, AirPlay, Google Cast, playback rate and fullscreen\n" +
			"support from a user agent. Capability hints are only used with --client-side.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := features.NewDetector(env, adapter.NullLogger())
			return printJSON(d.Features())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&env.UserAgent, "user-agent", "", "client user agent")
	flags.BoolVar(&env.ClientSide, "client-side", false, "trust the capability hints below")
	flags.BoolVar(&env.WebkitPresentationMode, "webkit-presentation-mode", false, "client has webkitSetPresentationMode")
	flags.BoolVar(&env.PictureInPictureEnabled, "pip", false, "client reports pictureInPictureEnabled")
	flags.BoolVar(&env.PlaybackRate, "playback-rate", false, "client can change playbackRate")
	flags.BoolVar(&env.FullscreenAPI, "fullscreen", false, "client has the fullscreen API")

	return cmd
}
