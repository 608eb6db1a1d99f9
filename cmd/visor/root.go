package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"visor/internal/client"
	"visor/internal/config"
	"visor/internal/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "visor",
	Short: "Vision inference client",
	Long:  `Visor - a command line client for remote computer-vision inference servers.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("server", "", "inference server URL")
	rootCmd.PersistentFlags().String("api-key", "", "API key (or VISOR_API_KEY)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("api.key", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	config.Init(cfgFile)
}

// newClient builds the inference client from the resolved configuration.
func newClient() (*client.Client, error) {
	serverURL := viper.GetString("server.url")
	if serverURL == "" {
		return nil, fmt.Errorf("no server URL configured (use --server or VISOR_SERVER_URL)")
	}

	zapLogger, err := logger.New(viper.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	c := client.New(serverURL, viper.GetString("api.key"),
		client.WithLogger(logger.Wrap(zapLogger)),
	)
	if viper.GetString("client.mode") == string(client.ModeLegacy) {
		c.UseLegacyProtocol()
	}
	if modelID := viper.GetString("model.id"); modelID != "" {
		c.SelectModel(modelID, categoryFromString(viper.GetString("model.category")))
	}
	return c, nil
}

func categoryFromString(s string) client.Category {
	switch s {
	case string(client.Classification):
		return client.Classification
	case string(client.InstanceSegmentation):
		return client.InstanceSegmentation
	default:
		return client.ObjectDetection
	}
}
