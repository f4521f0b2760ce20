package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/upiqr/internal/compose"
	"github.com/cristianadrielbraun/upiqr/internal/config"
	"github.com/cristianadrielbraun/upiqr/internal/export"
	"github.com/cristianadrielbraun/upiqr/internal/fonts"
	"github.com/cristianadrielbraun/upiqr/internal/handlers"
	"github.com/cristianadrielbraun/upiqr/internal/qr"
	"github.com/cristianadrielbraun/upiqr/internal/session"
	"github.com/cristianadrielbraun/upiqr/internal/upi"
)

var version = "v0.1.0"

func main() {
	var configPath, envFile string

	root := &cobra.Command{
		Use:           "upiqr",
		Short:         "UPI payment QR code generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "upiqr.yaml", "Path to config file")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to .env file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(configPath, envFile)
			if err != nil {
				return err
			}
			return runServe(cfg, log)
		},
	}
	root.AddCommand(serveCmd)
	root.RunE = serveCmd.RunE

	var g generateFlags
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a UPI QR code and export it to PNG and/or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(configPath, envFile)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cfg, log, g)
		},
	}
	generateCmd.Flags().StringVar(&g.form.VPA, "vpa", "", "Payee virtual payment address (required)")
	generateCmd.Flags().StringVar(&g.form.Name, "name", "", "Payee name (required)")
	generateCmd.Flags().StringVar(&g.form.Amount, "amount", "", "Fixed amount in rupees; leave empty to let the payer enter it")
	generateCmd.Flags().StringVar(&g.form.Remark, "remark", "", "Transaction note, at most 15 characters")
	generateCmd.Flags().BoolVar(&g.png, "png", false, "Write a PNG file")
	generateCmd.Flags().BoolVar(&g.pdf, "pdf", false, "Write a PDF file")
	generateCmd.Flags().StringVarP(&g.outDir, "out", "o", ".", "Output directory")
	root.AddCommand(generateCmd)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("upiqr %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setup(configPath, envFile string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}
	return cfg, cfg.NewLogger(), nil
}

// buildPipeline wires renderer, compositor and exporter. The logo starts
// loading here and is returned so callers can wait for it if they want to.
func buildPipeline(cfg *config.Config, log *logrus.Logger) (session.Pipeline, *compose.LogoFuture, error) {
	fs, err := fonts.Load(cfg.FontRegular, cfg.FontBold)
	if err != nil {
		return session.Pipeline{}, nil, errors.Wrap(err, "load fonts")
	}
	renderer, err := qr.New(cfg.QREngine, log)
	if err != nil {
		return session.Pipeline{}, nil, err
	}
	logo := compose.LoadLogo(cfg.LogoPath, compose.LogoSize, log)
	return session.Pipeline{
		Renderer:   renderer,
		Compositor: compose.New(fs, logo, log),
		Exporter:   export.New(fs),
	}, logo, nil
}

func runServe(cfg *config.Config, log *logrus.Logger) error {
	pipeline, _, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	h := handlers.New(pipeline, log)
	h.Routes(r, cfg.StaticDir)

	addr := ":" + strconv.Itoa(cfg.Port)
	log.WithFields(logrus.Fields{"addr": addr, "version": version, "qr_engine": cfg.QREngine}).Info("upiqr listening")
	return r.Run(addr)
}

type generateFlags struct {
	form     upi.Form
	png, pdf bool
	outDir   string
}

func runGenerate(ctx context.Context, cfg *config.Config, log *logrus.Logger, g generateFlags) error {
	pipeline, logo, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}

	// A headless run has no UI to refresh later, so give the logo a moment.
	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, _ = logo.Wait(waitCtx)

	s := session.New(pipeline, log)
	if _, err := s.Submit(g.form); err != nil {
		return err
	}
	if _, err := s.Generate(); err != nil {
		return err
	}
	fmt.Println(s.URI())

	kinds := []export.Kind{}
	if g.png || !g.pdf {
		kinds = append(kinds, export.KindPNG)
	}
	if g.pdf {
		kinds = append(kinds, export.KindPDF)
	}

	for _, kind := range kinds {
		a, err := s.Export(kind)
		if err != nil {
			return errors.Wrapf(err, "export %s", kind)
		}
		path, err := export.WriteFile(g.outDir, a)
		if err != nil {
			return err
		}
		fmt.Println(path)
	}
	return nil
}
