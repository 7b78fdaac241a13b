package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"drawcast/adapters/llm"
	"drawcast/adapters/postgres"
	"drawcast/adapters/tabular"
	"drawcast/app"
	"drawcast/internal"
	"drawcast/internal/config"
	"drawcast/ports"
	"drawcast/ui"
)

func main() {
	// Optional .env, same lookup the rest of the env config uses.
	_ = godotenv.Load()

	var configFile string

	rootCmd := &cobra.Command{
		Use:   "drawcast",
		Short: "Frequency-based draw prediction for a target date",
		Long: `drawcast scores every gap-constrained main combination and every star
pair against historical draw frequencies and reports the most and least
likely selections for the configured target date.`,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file overlaying the environment")

	rootCmd.AddCommand(
		newPredictCmd(&configFile),
		newServeCmd(&configFile),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newPredictCmd(configFile *string) *cobra.Command {
	var dataFile string
	var refine bool

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one prediction and print the report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.Source.DataFile = dataFile
				cfg.Source.DatabaseURL = ""
			}
			if cmd.Flags().Changed("refine") {
				cfg.Refine.Enabled = refine
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			service, err := buildService(cfg)
			if err != nil {
				return err
			}

			result, err := service.Predict(cmd.Context())
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(result.Report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "CSV or XLSX draw history (overrides DATA_FILE)")
	cmd.Flags().BoolVar(&refine, "refine", false, "Toggle the LLM refinement hook")

	return cmd
}

func newServeCmd(configFile *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction report over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			service, err := buildService(cfg)
			if err != nil {
				return err
			}

			return ui.NewServer(service, internal.DefaultLogger).ListenAndServe(cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides SERVE_ADDR)")

	return cmd
}

func loadConfig(configFile string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := cfg.ApplyFile(configFile); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// buildService wires the configured draw source and optional refiner into
// a prediction service.
func buildService(cfg *config.Config) (*app.PredictionService, error) {
	logger := internal.DefaultLogger

	var source ports.DrawSource
	if cfg.Source.DatabaseURL != "" {
		db, err := postgres.Connect(cfg.Source.DatabaseURL)
		if err != nil {
			return nil, err
		}
		source = postgres.NewDrawRepository(db, cfg.Prediction.Weekdays, cfg.Prediction.MainMax, cfg.Prediction.StarMax)
	} else {
		source = tabular.NewReader(cfg.Source.DataFile, cfg.Prediction.Weekdays, cfg.Prediction.MainMax, cfg.Prediction.StarMax)
	}

	var refiner ports.Refiner
	if cfg.Refine.Enabled {
		client, err := llm.NewClient(llm.Config{
			APIKey:  cfg.Refine.OpenAIKey,
			BaseURL: cfg.Refine.BaseURL,
			Timeout: cfg.Refine.Timeout,
		})
		if err != nil {
			return nil, err
		}
		refiner = llm.NewRefiner(client, cfg.Refine.OpenAIModel)
	}

	return app.NewPredictionService(cfg.Prediction, source, refiner, logger), nil
}
