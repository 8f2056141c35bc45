package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/waldirborbajr/versioncheck/banner"
	"github.com/waldirborbajr/versioncheck/config"
	"github.com/waldirborbajr/versioncheck/logger"
	"github.com/waldirborbajr/versioncheck/updater"
)

const shutdownTimeout = 5 * time.Second

type rootArgs struct {
	envFile string
	debug   bool
	current string
	url     string
	cfg     config.Config
}

// currentVersion picks the --current flag, then CURRENT_VERSION, then the build version
func (a *rootArgs) currentVersion() string {
	if a.current != "" {
		return a.current
	}
	if a.cfg.CurrentVersion != "" {
		return a.cfg.CurrentVersion
	}
	return version
}

func newRootCmd() *cobra.Command {
	args := &rootArgs{}

	cmd := &cobra.Command{
		Use:           "versioncheck",
		Short:         "Check whether a newer release is available",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	cmd.PersistentFlags().StringVar(&args.envFile, "env-file", "", "Load settings from this .env file instead of ./.env")
	cmd.PersistentFlags().BoolVar(&args.debug, "debug", false, "Enable debug logging (overrides DEBUG_MODE)")
	cmd.PersistentFlags().StringVar(&args.current, "current", "", "Current version (overrides CURRENT_VERSION)")
	cmd.PersistentFlags().StringVar(&args.url, "url", "", "Release endpoint (overrides UPDATE_CHECK_URL)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		var files []string
		if args.envFile != "" {
			files = append(files, args.envFile)
		}
		cfg, err := config.LoadConfig(files...)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		if args.url != "" {
			cfg.UpdateCheckURL = args.url
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if args.debug {
			cfg.DebugMode = true
		}
		args.cfg = cfg

		log := logger.InitLogger(logger.Options{Debug: cfg.DebugMode, File: cfg.LogFile, Console: cc.ErrOrStderr()})
		cfg.LogLoaded(log)
		return nil
	}

	cmd.AddCommand(newCheckCmd(args), newServeCmd(args), newVersionCmd())
	return cmd
}

func newCheckCmd(args *rootArgs) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check once for a newer release and print the outcome",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			res := updater.RunUpdateFlow(cc.Context(), args.currentVersion(), args.cfg, nil)
			if asJSON {
				enc := json.NewEncoder(cc.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printReport(cc.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func newServeCmd(args *rootArgs) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the update banner over HTTP, checking once per page load",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			if addr == "" {
				addr = args.cfg.ListenAddr
			}
			ctx, stop := signal.NotifyContext(cc.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, addr, banner.NewHandler(updater.NewChecker(args.cfg), args.currentVersion()))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides LISTEN_ADDR)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version of versioncheck",
		// Printing the build version needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cc *cobra.Command, _ []string) {
			cc.Println(version)
		},
	}
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, addr string, h http.Handler) error {
	log := logger.GetLogger()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("Serving update banner")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error serving update banner: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
