package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		addr        string
		contentFile string
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("content") {
				cfg.ContentFile = contentFile
			}
			if cmd.Flags().Changed("watch") {
				cfg.ContentWatch = watch
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			listen := cfg.Addr()
			if addr != "" {
				listen = addr
			}

			if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
				return err
			}
			log := logrus.StandardLogger()
			gin.SetMode(cfg.GinMode)

			c, err := loadContent(cfg.ContentFile)
			if err != nil {
				return err
			}
			store := content.NewStore(c)

			if cfg.ContentWatch {
				w, err := content.NewWatcher(cfg.ContentFile, store, log)
				if err != nil {
					return err
				}
				if err := w.Start(); err != nil {
					return err
				}
				defer w.Stop()
			}

			requestLogger, err := logging.NewRequestLogger(log, cfg.LogSalt, logging.DefaultSkipPaths)
			if err != nil {
				return err
			}
			srv, err := server.New(server.Options{
				Store:         store,
				Submitter:     contact.NewSubmitter(cfg.ContactSubmitDelay, nil, log),
				Logger:        log,
				RequestLogger: requestLogger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, listen)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default \":$PORT\")")
	cmd.Flags().StringVar(&contentFile, "content", "", "Content YAML file (default: $CONTENT_FILE or built-in)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the content file when it changes")
	return cmd
}
