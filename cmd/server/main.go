package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agrimanage/config"
	"agrimanage/pkg/logger"
	"agrimanage/pkg/metrics"
	"agrimanage/pkg/middleware"
	"agrimanage/router"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "agrimanage",
		Short:        "Farm dashboard API: crops, fertilizer calculator, calendar, weather and market prices",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), calcCmd(), exportCmd())
	return root
}

func setup() (config.AppConfig, *zap.Logger) {
	cfg := config.Load()
	log := logger.Must(cfg.LogLevel, cfg.LogFormat)
	if cfg.EnvFileErr != nil {
		log.Warn(".env not loaded", zap.Error(cfg.EnvFileErr))
	}
	return cfg, log
}

func serveCmd() *cobra.Command {
	var ephemeral bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := setup()
			defer log.Sync()
			log.Info("config", zap.Any("cfg", cfg.Redacted()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			metrics.Init(nil)
			a, err := buildApp(ctx, cfg, log, ephemeral)
			if err != nil {
				return err
			}
			defer a.close()

			e := echo.New()
			e.HideBanner = true
			e.Use(echoMiddleware.Recover())
			e.Use(middleware.RequestLogger(log.Named("http")))
			router.New(e, cfg.APIKey, a.handlers)

			errc := make(chan error, 1)
			go func() {
				log.Info("listening", zap.String("port", cfg.Port))
				errc <- e.Start(":" + cfg.Port)
			}()

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			log.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(sctx)
		},
	}
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep records in memory only")
	return cmd
}

func calcCmd() *cobra.Command {
	var fertilizer string
	cmd := &cobra.Command{
		Use:   "calc <crop> <area-acres>",
		Short: "Compute fertilizer needed for an area",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log := setup()
			defer log.Sync()
			a, err := buildApp(cmd.Context(), cfg, zap.NewNop(), true)
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.calc.Compute(args[0], fertilizer, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s / %s: %g kg/acre x %g acres = %s kg\n",
				res.Crop, res.Fertilizer, res.Rate, res.Area, res.TotalDisplay)
			return nil
		},
	}
	cmd.Flags().StringVarP(&fertilizer, "fertilizer", "f", "urea", "urea, dap or mop")
	return cmd
}

func exportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored crops to a csv, xlsx or pdf file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := setup()
			defer log.Sync()
			a, err := buildApp(cmd.Context(), cfg, log, false)
			if err != nil {
				return err
			}
			defer a.close()

			f, err := a.export.Export(cmd.Context(), format)
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = f.Name
			} else if st, err := os.Stat(path); err == nil && st.IsDir() {
				path = filepath.Join(path, f.Name)
			}
			if err := os.WriteFile(path, f.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(f.Data))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv, xlsx or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory")
	return cmd
}
