// Command hrpulse runs the HR analytics pipeline: generate or ingest an
// employee dataset, clean and validate it, compute workforce KPIs, and
// surface the results through a dashboard, terminal tables, or a Markdown
// report.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hrpulse/internal/config"
	"hrpulse/internal/dataset"
	"hrpulse/internal/hr"
	"hrpulse/internal/insight"
	"hrpulse/internal/logging"
	"hrpulse/internal/report"
	"hrpulse/internal/web"
)

var rootCmd = &cobra.Command{
	Use:   "hrpulse",
	Short: "HR analytics pipeline",
	Long: `hrpulse ingests a tabular employee dataset, cleans and validates it,
computes workforce KPIs, and serves the results as a dashboard, terminal
tables, or a Markdown report.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("HRPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("dataset", "d", "", "dataset CSV path (overrides DATASET_PATH)")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("dataset", rootCmd.PersistentFlags().Lookup("dataset"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(reportCmd())
}

// loadConfig loads .env, environment configuration, and flag overrides, and
// installs the global logger.
func loadConfig() (*config.Config, error) {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if path := viper.GetString("dataset"); path != "" {
		cfg.Dataset.Path = path
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			slog.Info("configuration loaded",
				"port", cfg.Server.Port,
				"dataset", cfg.Dataset.Path,
				"insight_enabled", cfg.Insight.Enabled(),
			)

			server := web.NewServer(cfg)

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh

				slog.Info("shutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("shutdown error", "error", err)
				}
			}()

			slog.Info("server starting", "addr", cfg.Server.Addr())
			if err := server.Start(); err != nil {
				slog.Info("server stopped", "error", err)
			}
			return nil
		},
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Run the pipeline once and print KPIs and issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			raw, err := dataset.ReadFile(cfg.Dataset.Path)
			if err != nil {
				return err
			}
			result := hr.Run(raw)

			if viper.GetBool("json") {
				return printJSON(struct {
					RunID   string         `json:"run_id"`
					Records int            `json:"record_count"`
					KPIs    hr.KPISnapshot `json:"kpis"`
					Issues  []hr.Issue     `json:"issues"`
				}{result.RunID, len(result.Records), result.KPIs, result.Issues})
			}

			printKPITable(result.KPIs, len(result.Records))
			printIssueTable(result.Issues)
			return nil
		},
	}
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic employee dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			profile := dataset.DefaultProfile()
			if path, _ := cmd.Flags().GetString("profile"); path != "" {
				profile, err = dataset.LoadProfile(path)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("records") {
				profile.Records, _ = cmd.Flags().GetInt("records")
			}
			if cmd.Flags().Changed("seed") {
				profile.Seed, _ = cmd.Flags().GetInt64("seed")
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = cfg.Dataset.Path
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create dataset dir: %w", err)
				}
			}

			records := dataset.Generate(profile)
			if err := dataset.WriteFile(out, records); err != nil {
				return err
			}

			fmt.Printf("generated %d records at %s\n", len(records), out)
			return nil
		},
	}
	cmd.Flags().String("out", "", "output CSV path (default: configured dataset path)")
	cmd.Flags().Int("records", 0, "number of base records")
	cmd.Flags().Int64("seed", 0, "random seed")
	cmd.Flags().String("profile", "", "YAML generation profile")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the pipeline and write a Markdown analysis report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dir, _ := cmd.Flags().GetString("out-dir"); dir != "" {
				cfg.Report.OutputDir = dir
			}

			raw, err := dataset.ReadFile(cfg.Dataset.Path)
			if err != nil {
				return err
			}
			result := hr.Run(raw)

			narrative := insight.New(cfg.Insight).Analyze(cmd.Context(), result.Issues, result.KPIs)

			path, err := report.NewGenerator(cfg.Report.OutputDir).Write(result, narrative)
			if err != nil {
				return err
			}

			fmt.Printf("report written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().String("out-dir", "", "report output directory")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printKPITable(kpis hr.KPISnapshot, recordCount int) {
	avgAge := "n/a"
	if kpis.AverageAge.Valid {
		avgAge = fmt.Sprintf("%.1f", kpis.AverageAge.Float64)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Workforce KPIs (%d records)", recordCount)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Headcount", kpis.Headcount},
		{"Attrition rate", fmt.Sprintf("%.2f%%", kpis.AttritionRate)},
		{"Average age", avgAge},
		{"Average tenure", fmt.Sprintf("%.1f years", kpis.AverageTenure)},
	})

	depts := make([]string, 0, len(kpis.DeptHeadcount))
	for d := range kpis.DeptHeadcount {
		depts = append(depts, d)
	}
	sort.Strings(depts)
	for _, d := range depts {
		t.AppendRow(table.Row{"Headcount: " + d, kpis.DeptHeadcount[d]})
	}
	t.Render()
}

func printIssueTable(issues []hr.Issue) {
	if len(issues) == 0 {
		fmt.Println("no issues detected")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Data quality issues (%d)", len(issues))
	t.AppendHeader(table.Row{"Employee", "Issue", "Value", "Severity"})
	for _, i := range issues {
		t.AppendRow(table.Row{i.EmployeeID, i.Type, i.Value, i.Severity})
	}
	t.Render()
}
