package main

import (
	"codeexplainer/config"
	"codeexplainer/internal/analysis"
	"codeexplainer/internal/llm"
	"codeexplainer/internal/web"
	"codeexplainer/logging"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form and JSON API",
	Long: `Start the HTTP server.

Endpoints:
  GET    /             Analysis form
  POST   /analyze      Submit the form (language, code)
  POST   /api/analyze  JSON {"language": "...", "code": "..."}
  GET    /health       Health check`,
	RunE: runServe,
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides server.port)")
}

// loadServeConfig loads and validates the configuration for the serve command.
func loadServeConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if err := config.LoadConfig(configPath); err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	cfg := config.AppConfig

	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	logging.InitLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("error initializing %s client: %w", cfg.LLM.Provider, err)
	}

	logrus.Infof("Using %s provider", cfg.LLM.Provider)
	server := web.NewServer(analysis.NewEngine(client), cfg.Server)
	return server.Run(ctx, fmt.Sprintf(":%d", cfg.Server.Port))
}
