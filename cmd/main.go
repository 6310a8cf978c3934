package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BalanceBalls/timesheet-generator/internal/config"
	"github.com/BalanceBalls/timesheet-generator/internal/generator"
	"github.com/BalanceBalls/timesheet-generator/internal/generator/gsheet"
	htmlgenerator "github.com/BalanceBalls/timesheet-generator/internal/generator/html"
	pdfgenerator "github.com/BalanceBalls/timesheet-generator/internal/generator/pdf"
	"github.com/BalanceBalls/timesheet-generator/internal/server"
	"github.com/BalanceBalls/timesheet-generator/internal/service"
	"github.com/BalanceBalls/timesheet-generator/internal/storage/sqlite"
)

const reportTemplate = "timesheet_report.tmpl"

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	cfg := config.Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("unable to parse environment variables: %s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCommand(cfg).ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func rootCommand(cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timesheetgen",
		Short: "Monthly leave timesheet generator",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the timesheet HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer svc.Close()

			srv := server.New(cfg.HttpAddr, svc, slog.Default())
			return srv.ListenAndServe(cmd.Context())
		},
	}

	var (
		userID int64
		month  int
		year   int
		format string
	)
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a timesheet for a user and month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}

			svc, err := buildService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer svc.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(),
				time.Duration(cfg.RenderTimeout)*time.Second)
			defer cancel()

			result, err := svc.Render(ctx, userID, time.Month(month), year, format)
			if err != nil {
				return err
			}

			if len(result.Data) == 0 {
				fmt.Println("report written to spreadsheet range:", result.Name)
				return nil
			}

			if err := os.MkdirAll(cfg.ReportFileDir, 0o755); err != nil {
				return fmt.Errorf("failed to create reports folder: %w", err)
			}

			path := filepath.Join(cfg.ReportFileDir, result.Name)
			if err := os.WriteFile(path, result.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write report file: %w", err)
			}

			fmt.Println("report written to:", path)
			return nil
		},
	}
	generateCmd.Flags().Int64Var(&userID, "user", 0, "user id")
	generateCmd.Flags().IntVar(&month, "month", int(time.Now().Month()), "target month (1-12)")
	generateCmd.Flags().IntVar(&year, "year", time.Now().Year(), "target year")
	generateCmd.Flags().StringVar(&format, "format", "html", "report format: html, pdf or gsheet")
	_ = generateCmd.MarkFlagRequired("user")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create tables and load demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := sqlite.New(cfg.DbName)
			if err != nil {
				return err
			}
			if err := db.Up(cmd.Context()); err != nil {
				return err
			}
			return db.Seed(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}

func buildService(ctx context.Context, cfg config.Config) (*service.Service, error) {
	db, err := sqlite.New(cfg.DbName)
	if err != nil {
		return nil, err
	}
	if err := db.Up(ctx); err != nil {
		return nil, err
	}

	generators := map[string]generator.Generator{
		"html": htmlgenerator.New(reportTemplate),
		"pdf":  pdfgenerator.New(),
	}

	var sheets gsheet.TimesheetWriter
	if cfg.SpreadsheetId != "" {
		client, err := gsheet.New(ctx, cfg.SpreadsheetId, cfg.SheetName, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		sheets = client
	}

	sched := service.NewScheduler(ctx)
	return service.New(db, generators, sheets, sched, slog.Default()), nil
}
