package main

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"visor/internal/client"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show inference server information",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		info, err := c.ServerInfo(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage the server model registry",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded models",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		registry, err := c.ListModels(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(registry)
	},
}

var modelsLoadCmd = &cobra.Command{
	Use:   "load <model-id>",
	Short: "Load a model on the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		category, _ := cmd.Flags().GetString("category")
		setDefault, _ := cmd.Flags().GetBool("set-default")
		registry, err := c.LoadModel(cmd.Context(), args[0], categoryFromString(category), setDefault)
		if err != nil {
			return err
		}
		return printJSON(registry)
	},
}

var modelsUnloadCmd = &cobra.Command{
	Use:   "unload <model-id>",
	Short: "Unload a model from the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		registry, err := c.UnloadModel(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(registry)
	},
}

var modelsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Unload all models from the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		registry, err := c.UnloadAllModels(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(registry)
	},
}

func printJSON(v any) error {
	out, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func SetupModelsCmd() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsLoadCmd)
	modelsCmd.AddCommand(modelsUnloadCmd)
	modelsCmd.AddCommand(modelsClearCmd)

	modelsLoadCmd.Flags().StringP("category", "c", string(client.ObjectDetection), "model category")
	modelsLoadCmd.Flags().Bool("set-default", false, "use this model for subsequent inference calls")
}
