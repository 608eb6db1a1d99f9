package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"visor/internal/client"
	"visor/internal/media"
)

var streamCmd = &cobra.Command{
	Use:   "stream <directory>",
	Short: "Run inference over the image files of a directory, frame by frame",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("legacy") {
			c.UseLegacyProtocol()
		}

		cfg := client.DefaultConfig()
		source, err := media.NewDirSource(args[0], cfg.ImageExtensions)
		if err != nil {
			return err
		}

		stream := c.InferStream(source, inferOptionsFromFlags(cmd))
		for {
			pair, ok, err := stream.Next(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			count := pair.Result.Get("predictions.#")
			fmt.Printf("%s: %d predictions\n", pair.Frame.Path, count.Int())
		}
	},
}

func SetupStreamCmd() {
	rootCmd.AddCommand(streamCmd)

	streamCmd.Flags().StringP("model", "m", "", "model identifier (default from config)")
	streamCmd.Flags().StringP("category", "c", "", "model category")
	streamCmd.Flags().Bool("legacy", false, "use the legacy protocol")
}
