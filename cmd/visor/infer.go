package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"visor/internal/client"
	"visor/internal/media"
)

var inferCmd = &cobra.Command{
	Use:   "infer <image>...",
	Short: "Run inference on one or more images",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("legacy") {
			c.UseLegacyProtocol()
		}

		cfg := client.DefaultConfig()
		if cmd.Flags().Changed("confidence") {
			confidence, _ := cmd.Flags().GetFloat64("confidence")
			cfg.Confidence = client.Float(confidence)
		}
		visualize, _ := cmd.Flags().GetBool("visualize")
		if visualize {
			cfg.Visualize = client.Bool(true)
		}
		savePath, _ := cmd.Flags().GetString("save-visualization")
		if savePath != "" {
			cfg.Visualize = client.Bool(true)
			cfg.VisualizationFormat = media.FormatJPEG
		}
		c.Configure(cfg)

		inputs := make([]media.Input, 0, len(args))
		for _, path := range args {
			inputs = append(inputs, media.File(path))
		}

		opts := inferOptionsFromFlags(cmd)
		prediction, err := c.Infer(cmd.Context(), inputs, opts)
		if err != nil {
			return err
		}

		for i, result := range prediction.All() {
			fmt.Println(gjson.GetBytes(result.Doc, "@pretty").Raw)
			if savePath != "" && result.Visualization != nil {
				path := savePath
				if prediction.IsBatch() {
					path = fmt.Sprintf("%d_%s", i, savePath)
				}
				if err := os.WriteFile(path, result.Visualization.Bytes, 0o644); err != nil {
					return fmt.Errorf("save visualization: %w", err)
				}
			}
		}
		return nil
	},
}

// inferOptionsFromFlags resolves the per-call model override flags shared by
// infer and stream.
func inferOptionsFromFlags(cmd *cobra.Command) *client.InferOptions {
	opts := &client.InferOptions{}
	if modelID, _ := cmd.Flags().GetString("model"); modelID != "" {
		opts.ModelID = modelID
	}
	if category, _ := cmd.Flags().GetString("category"); category != "" {
		opts.Category = categoryFromString(category)
	}
	return opts
}

func SetupInferCmd() {
	rootCmd.AddCommand(inferCmd)

	inferCmd.Flags().StringP("model", "m", "", "model identifier (default from config)")
	inferCmd.Flags().StringP("category", "c", "", "model category (object-detection, classification, instance-segmentation)")
	inferCmd.Flags().Bool("legacy", false, "use the legacy protocol")
	inferCmd.Flags().Float64("confidence", 0, "confidence threshold")
	inferCmd.Flags().Bool("visualize", false, "request a rendered visualization")
	inferCmd.Flags().String("save-visualization", "", "write the visualization JPEG to this path")
}
