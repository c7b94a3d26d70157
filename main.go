package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ethpay/payqr/api"
	"github.com/ethpay/payqr/config"
	"github.com/ethpay/payqr/payment"
	"github.com/ethpay/payqr/qr"
	"github.com/ethpay/payqr/store"
)

var version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "payqr",
		Short: "Ethereum payment-request QR code generator",
	}

	// --- serve command -------------------------------------------------------
	var configPath string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the payment QR HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	root.AddCommand(serveCmd)

	// --- generate command ----------------------------------------------------
	var genTo, genAmount, genNote, genOut string
	var genSize int
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a payment QR PNG locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(genTo, genAmount, genNote, genOut, genSize)
		},
	}
	generateCmd.Flags().StringVar(&genTo, "to", "", "Recipient address (0x...)")
	generateCmd.Flags().StringVar(&genAmount, "amount", "", "Amount in ETH")
	generateCmd.Flags().StringVar(&genNote, "note", "", "Optional payment note")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "payment.png", "Output PNG path")
	generateCmd.Flags().IntVar(&genSize, "size", qr.DefaultSize, "Image size in pixels")
	root.AddCommand(generateCmd)

	// --- status command ------------------------------------------------------
	var statusAddr string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running payqr service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(statusAddr)
		},
	}
	statusCmd.Flags().StringVar(&statusAddr, "addr", "http://localhost:8560", "Service HTTP address")
	root.AddCommand(statusCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("payqr %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runServe is the main service entrypoint that wires all components together.
func runServe(configPath string) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}

	// 2. Setup logger
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	log.Info("starting payqr", "version", version, "port", cfg.Port, "data_dir", cfg.DataDir)

	// 3. Open payment history store
	dbPath := filepath.Join(cfg.DataDir, "payments.db")
	payStore, err := store.NewPaymentStore(dbPath)
	if err != nil {
		return fmt.Errorf("open payment store: %w", err)
	}
	defer payStore.Close()

	// 4. Create QR renderer
	renderer, err := rendererFromConfig(cfg.QR)
	if err != nil {
		return fmt.Errorf("create qr renderer: %w", err)
	}

	// 5. Start HTTP server
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Store:     payStore,
			Renderer:  renderer,
			Log:       log,
			Version:   version,
			StartTime: time.Now(),
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("payqr is running", "form_url", fmt.Sprintf("http://localhost:%d/", cfg.Port))

	// 6. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("goodbye")
	return nil
}

// runGenerate runs the validate-convert-render pipeline once and writes the
// PNG artifact to a local file.
func runGenerate(to, amount, note, out string, size int) error {
	form := payment.Form{Address: to, Amount: amount, Note: note}
	req, err := form.Validate()
	if err != nil {
		return err
	}

	renderer, err := qr.NewRenderer(qr.Options{Size: size, Border: true})
	if err != nil {
		return err
	}

	png, err := renderer.Render(req.URI)
	if err != nil {
		return fmt.Errorf("render QR code: %w", err)
	}

	if err := os.WriteFile(out, png, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	fmt.Printf("%s\n", req.URI)
	fmt.Printf("wrote %s (%d bytes)\n", out, len(png))
	return nil
}

// runStatus queries the service HTTP status endpoint.
func runStatus(addr string) error {
	resp, err := http.Get(addr + "/status")
	if err != nil {
		return fmt.Errorf("failed to reach payqr at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	var buf [4096]byte
	n, _ := resp.Body.Read(buf[:])
	fmt.Println(string(buf[:n]))
	return nil
}

// rendererFromConfig builds a qr.Renderer from the rendering section of the
// config file.
func rendererFromConfig(cfg config.QRConfig) (*qr.Renderer, error) {
	opts := qr.Options{Size: cfg.Size, Border: cfg.Border}

	if cfg.Foreground != "" {
		fg, err := qr.ParseColor(cfg.Foreground)
		if err != nil {
			return nil, err
		}
		opts.Foreground = fg
	}
	if cfg.Background != "" {
		bg, err := qr.ParseColor(cfg.Background)
		if err != nil {
			return nil, err
		}
		opts.Background = bg
	}

	return qr.NewRenderer(opts)
}
