package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/api"
	"github.com/julienpequegnot/qaboard/internal/badge"
	"github.com/julienpequegnot/qaboard/internal/hub"
	"github.com/julienpequegnot/qaboard/internal/logging"
	"github.com/julienpequegnot/qaboard/internal/qa"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, websocket hub and badge sweep",
	Long: `Serves the JSON API under /api, live notifications on /ws and
Prometheus metrics on /metrics. Badges are re-checked on badges.schedule.`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if serveAddr != "" {
		a.cfg.Server.Addr = serveAddr
	}
	if _, err := a.badges.Seed(); err != nil {
		return fmt.Errorf("failed to seed badges: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := hub.New(a.notifications, a.users)
	dispatcher := a.dispatcher(h)
	awarder := a.awarder(dispatcher)
	service := qa.NewService(a.db, dispatcher, awarder)

	scheduler, err := badge.NewScheduler(a.cfg.Badges.Schedule, awarder)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		h.Run(ctx)
	}()

	handler := api.NewHandler(a.db, a.cfg.Scoring, service, h.ServeWS).Routes()
	fmt.Printf("Qaboard listening on %s (Ctrl+C to stop)\n", a.cfg.Server.Addr)

	err = api.Serve(ctx, a.cfg.Server, handler)
	stop()
	<-hubDone
	if err != nil {
		return err
	}
	logging.Info().Msg("shutdown complete")
	return nil
}
