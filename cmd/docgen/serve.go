package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ieglobal/go-docgen/components/documents"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the document API over HTTP",
		Long: `Serve the document API.

Routes (under server.base_path, default /api):
  GET  /document-types
  GET  /document-types/:type/schema
  POST /documents/:type[?renderer=text]
  POST /documents/:type/validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			engine, pattern, err := a.router()
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:         addr,
				Handler:      engine,
				ReadTimeout:  a.cfg.ReadTimeout(),
				WriteTimeout: a.cfg.WriteTimeout(),
			}
			return a.listen(cmd.Context(), srv, pattern)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")
	return cmd
}

func (a *app) router() (*gin.Engine, string, error) {
	switch strings.ToLower(a.cfg.Logging.Mode) {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	component := documents.New(
		documents.WithGenerator(a.generator()),
		documents.WithLogger(a.log),
		documents.WithMaxBodyBytes(a.cfg.Server.MaxBodyBytes),
	)
	pattern, err := component.RegisterRoutes(engine, a.cfg.Server.BasePath)
	if err != nil {
		return nil, "", err
	}
	return engine, pattern, nil
}

func (a *app) listen(ctx context.Context, srv *http.Server, pattern string) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", srv.Addr, "documents", pattern)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
