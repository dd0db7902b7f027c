// cmd/nzcrash/main.go
// CLI around the crash dataset: validate the source tables, build the
// summary report, or export the tables into PostgreSQL.
//
// Usage:
//
//	nzcrash validate
//	nzcrash report
//	DB_PASS=secret nzcrash export
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/nzcrash/config"
	"github.com/padraicbc/nzcrash/dataset"
	bundb "github.com/padraicbc/nzcrash/db"
	applog "github.com/padraicbc/nzcrash/logger"
	"github.com/padraicbc/nzcrash/report"
)

const batchSize = 500

func main() {
	var dataDir string
	var out string
	var debug bool

	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "nzcrash",
		Short: "New Zealand traffic-crash statistics",
		Long: `nzcrash redistributes the New Zealand traffic-crash tables
(crashes, causes, vehicles, objects_struck) and reproduces the example
joins and summary charts built on them.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if out != "" {
				cfg.ReportOut = out
			}
			if debug {
				cfg.Debug = true
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "directory containing the four CSV tables")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "v", false, "debug logging")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the four tables and check every structural invariant",
		Run: func(cmd *cobra.Command, args []string) {
			logger := mustLogger(cfg)
			d := mustLoad(cfg, logger)
			if err := d.CheckSeverity(dataset.FatalRulePolicy); err != nil {
				logger.Fatal("severity check failed", zap.Error(err))
			}
			logger.Info("dataset valid",
				zap.Int("crashes", len(d.Crashes)),
				zap.Int("causes", len(d.Causes)),
				zap.Int("vehicles", len(d.Vehicles)),
				zap.Int("objects_struck", len(d.ObjectsStruck)),
			)
		},
	}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Build the summary tables and write the chart page",
		Run: func(cmd *cobra.Command, args []string) {
			logger := mustLogger(cfg)
			d := mustLoad(cfg, logger)

			summaries, err := report.Build(d)
			if err != nil {
				logger.Fatal("build summaries failed", zap.Error(err))
			}
			for _, yc := range summaries.PerYear {
				logger.Info("crashes per year", zap.Int("year", yc.Year), zap.Int("crashes", yc.Crashes))
			}
			for _, sc := range summaries.BySeverity {
				logger.Info("crashes by severity", zap.String("severity", string(sc.Severity)), zap.Int("crashes", sc.Crashes))
			}
			logger.Info("fatalities",
				zap.Int("fatal_crashes", summaries.Fatalities.FatalCrashes),
				zap.Int("fatalities", summaries.Fatalities.Fatalities),
			)

			f, err := os.Create(cfg.ReportOut)
			if err != nil {
				logger.Fatal("create report file failed", zap.Error(err))
			}
			defer f.Close()
			if err := report.Render(summaries, f); err != nil {
				logger.Fatal("render report failed", zap.Error(err))
			}
			logger.Info("report written", zap.String("path", cfg.ReportOut))
		},
	}
	reportCmd.Flags().StringVarP(&out, "out", "o", "", "output path for the HTML report")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Bulk-load the validated tables into PostgreSQL",
		Run: func(cmd *cobra.Command, args []string) {
			logger := mustLogger(cfg)
			if err := cfg.RequireDB(); err != nil {
				logger.Fatal("export config invalid", zap.Error(err))
			}
			d := mustLoad(cfg, logger)

			ctx := context.Background()
			bdb, err := bundb.Setup(cfg)
			if err != nil {
				logger.Fatal("database setup failed", zap.Error(err))
			}
			defer bdb.Close()

			if err := bundb.CreateTables(ctx, bdb); err != nil {
				logger.Fatal("create tables failed", zap.Error(err))
			}

			steps := []struct {
				table string
				fn    func() (int, error)
			}{
				{"crashes", func() (int, error) { return insertBatches(ctx, bdb, d.Crashes) }},
				{"vehicles", func() (int, error) { return insertBatches(ctx, bdb, d.Vehicles) }},
				{"objects_struck", func() (int, error) { return insertBatches(ctx, bdb, d.ObjectsStruck) }},
				{"causes", func() (int, error) { return insertBatches(ctx, bdb, d.Causes) }},
			}
			for _, step := range steps {
				n, err := step.fn()
				if err != nil {
					logger.Fatal("export failed", zap.String("table", step.table), zap.Error(err))
				}
				logger.Info("table exported", zap.String("table", step.table), zap.Int("rows", n))
			}
		},
	}

	rootCmd.AddCommand(validateCmd, reportCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func mustLogger(cfg *config.Config) *zap.Logger {
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	return logger
}

func mustLoad(cfg *config.Config, logger *zap.Logger) *dataset.Dataset {
	d, err := dataset.Load(cfg.DataDir)
	if err != nil {
		logger.Fatal("load dataset failed", zap.String("dir", cfg.DataDir), zap.Error(err))
	}
	return d
}

func insertBatches[T any](ctx context.Context, bdb *bun.DB, rows []T) (int, error) {
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		chunk := rows[start:end]
		if _, err := bdb.NewInsert().Model(&chunk).Exec(ctx); err != nil {
			return start, err
		}
	}
	return len(rows), nil
}
