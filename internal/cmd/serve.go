package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/j-casimiro/zenith-ai/internal/config"
	"github.com/j-casimiro/zenith-ai/internal/logger"
	"github.com/j-casimiro/zenith-ai/internal/server"
)

var (
	serveAddr    string
	serveBackend string
	serveDev     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the front end server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default from ZENITH_ADDR or :3000)")
	serveCmd.Flags().StringVarP(&serveBackend, "backend", "b", "", "Backend API base URL (default from ZENITH_BACKEND_URL)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "Development mode: pretty logs and startup banner")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveBackend != "" {
		cfg.BackendURL = serveBackend
	}
	if serveDev {
		cfg.Dev = true
	}

	logger.Configure(logger.LevelFromEnv(cfg.Dev), cfg.Dev)

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	// Shut down cleanly on SIGINT/SIGTERM.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Infof("shutting down")
		if err := srv.Shutdown(); err != nil {
			logger.Errorf("shutdown failed: %v", err)
		}
	}()

	return srv.Listen()
}
