package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/radstar/internal/catalog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the case catalog and image assets over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			cfg.Serve.Addr = v
		}
		if v, _ := cmd.Flags().GetString("assets"); v != "" {
			cfg.Serve.Assets = v
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.Serve.Assets != "" {
			if fi, err := os.Stat(cfg.Serve.Assets); err != nil || !fi.IsDir() {
				return fmt.Errorf("assets directory %q not found", cfg.Serve.Assets)
			}
		}

		log, err := newLogger(cfg, true)
		if err != nil {
			return err
		}
		defer log.Sync()

		if debug, _ := cmd.Flags().GetBool("debug"); !debug {
			gin.SetMode(gin.ReleaseMode)
		}

		h := catalog.NewHandlers(log, version, cfg.Depth(), cfg.Serve.Assets != "")
		router := catalog.NewRouter(catalog.RouterOptions{
			Handlers:  h,
			Log:       log,
			AssetsDir: cfg.Serve.Assets,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return catalog.Serve(ctx, cfg.Serve.Addr, router, log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides serve.addr)")
	serveCmd.Flags().String("assets", "", "Directory holding medical_images/ (overrides serve.assets)")
	serveCmd.Flags().Bool("debug", false, "Run gin in debug mode")
}
