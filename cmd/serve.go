package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studentsim/internal/config"
	"github.com/abhisek/studentsim/internal/gallery"
	"github.com/abhisek/studentsim/internal/logger"
	"github.com/abhisek/studentsim/internal/scratch"
	"github.com/abhisek/studentsim/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		var sinks []string
		if cfg.Log.File != "" {
			sinks = append(sinks, cfg.Log.File)
		}
		log, err := logger.New(cfg.Log.Mode, sinks...)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer log.Sync()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		var sc scratch.Store = scratch.NewMemory()
		if cfg.Scratch.RedisAddr != "" {
			rs, err := scratch.DialRedis(ctx, cfg.Scratch.RedisAddr)
			if err != nil {
				return fmt.Errorf("connect scratch store: %w", err)
			}
			sc = rs
			log.Info("using redis scratch store", "addr", cfg.Scratch.RedisAddr)
		}
		defer sc.Close()

		events := st.EventRepo()
		provider, llmCfg := envProvider(ctx, events, log)
		if provider == nil {
			log.Info("no LLM provider configured, serving mock data until a client sets a credential")
		} else {
			log.Info("LLM provider ready", "provider", llmCfg.Provider, "model", provider.ModelID())
		}

		srv := server.New(server.Deps{
			LLM:           llmCfg,
			Default:       provider,
			Gallery:       gallery.NewService(st.GalleryRepo()),
			Prompts:       st.PromptRepo(),
			Events:        events,
			Scratch:       sc,
			CredentialTTL: cfg.Server.CredentialTTL,
			Logger:        log,
		})

		httpSrv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		}
		log.Info("studentsim API listening", "addr", cfg.Server.Addr)
		return runServer(ctx, httpSrv)
	},
}

// runServer serves until ctx is cancelled, then drains connections.
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides STUDENTSIM_ADDR)")
}
