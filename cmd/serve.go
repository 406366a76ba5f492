package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadcv/fadcv/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live preview and JSON API",
	Long: `Start a local HTTP server with a live preview of the CV, the document API
used by editors and a PDF export endpoint.`,
	Example: `  fadcv serve
  fadcv serve --addr 127.0.0.1:9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = a.Config.ListenAddr
		}

		srv := server.New(a.Workspace, a.Exporter, a.Log)
		errc := make(chan error, 1)
		go func() { errc <- srv.Listen(addr) }()

		fmt.Printf("✓ Preview at http://%s (Ctrl+C to stop)\n", addr)

		select {
		case err := <-errc:
			return err
		case <-cmd.Context().Done():
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		fmt.Println("\n✓ Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default: listen_addr)")
}
