// Package main provides the CLI entry point for imagepanel-go.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/imageinfo"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/output"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/server"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/source"
)

var (
	envFile    string
	outputPath string
	pretty     bool
	format     string
	sheet      string
	query      string
	width      int
	height     int
	srvWidth   int
	srvHeight  int

	cfg    config
	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imagepanel",
		Short: "Render tables of base64 images as a labelled image grid",
		Long: `imagepanel-go reads a result table (xlsx, SQLite or JSON data frames) holding
base64-encoded images and per-row metadata, and renders it as a grid of bordered,
labelled images with optional threshold colors and overlay rectangles.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "Environment file to load if present")
	pf.String("options", "", "Options file, YAML or JSON (env "+envOptions+")")
	pf.String("variant", "", "Panel variant: single or dual (env "+envVariant+")")
	pf.String("log-level", defaultLogLevel, "Log level: debug, info, warn, error (env "+envLogLevel+")")

	rootCmd.AddCommand(newRenderCmd(), newServeCmd(), newInspectCmd(), newDefaultsCmd())
	return rootCmd
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	c.applyFlags(cmd.Flags())

	l, err := newLogger(os.Stderr, c.LogLevel)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read from xlsx sources (default: first sheet)")
	cmd.Flags().StringVar(&query, "query", "", "SQL query for SQLite sources (default: "+source.DefaultQuery+")")
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [table]",
		Short: "Render the panel as HTML, or the projected rows as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	addSourceFlags(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "html", "Output format: html, json")
	cmd.Flags().IntVar(&width, "width", 800, "Panel width in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "Panel height in pixels")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := cfg.options()
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}

	data, err := source.Load(cmd.Context(), args[0], source.Config{Sheet: sheet, Query: query})
	if err != nil {
		return fmt.Errorf("load table: %w", err)
	}
	logger.Debug("table loaded", "path", args[0], "series", len(data.Series))

	var out []byte
	switch format {
	case "html":
		node, err := imagepanel.Render(data, opts, models.Dimensions{Width: width, Height: height})
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		var buf bytes.Buffer
		if err := output.WritePage(&buf, args[0], node); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
		out = buf.Bytes()
	case "json":
		rows, err := imagepanel.Project(data, opts)
		if err != nil {
			return fmt.Errorf("projection failed: %w", err)
		}
		if rows == nil {
			rows = []models.RowRecord{}
		}
		if out, err = output.ToJSON(rows, pretty); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	default:
		return fmt.Errorf("invalid format: %s (must be html or json)", format)
	}

	return writeOutput(out)
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [table]",
		Short: "Serve the panel and its options editor over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}
	addSourceFlags(cmd)
	cmd.Flags().String("addr", defaultAddr, "Listen address (env "+envAddr+")")
	cmd.Flags().IntVar(&srvWidth, "width", 1200, "Panel width in pixels")
	cmd.Flags().IntVar(&srvHeight, "height", 800, "Panel height in pixels")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	opts, err := cfg.options()
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}

	path := args[0]
	if _, err := source.DetectKind(path); err != nil {
		return err
	}
	srcCfg := source.Config{Sheet: sheet, Query: query}
	load := func(ctx context.Context) (models.PanelData, error) {
		return source.Load(ctx, path, srcCfg)
	}

	s := server.New(opts, load, models.Dimensions{Width: srvWidth, Height: srvHeight}, path, logger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "table", path, "variant", opts.Variant)
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

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [table]",
		Short: "Report the format and dimensions of every row's image",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	addSourceFlags(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts, err := cfg.options()
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}

	data, err := source.Load(cmd.Context(), args[0], source.Config{Sheet: sheet, Query: query})
	if err != nil {
		return fmt.Errorf("load table: %w", err)
	}
	rows, err := imagepanel.Project(data, opts)
	if err != nil {
		return fmt.Errorf("projection failed: %w", err)
	}

	infos := imageinfo.Inspect(rows)
	for _, info := range infos {
		if info.Error != "" {
			logger.Warn("undecodable image", "row", info.Row, "error", info.Error)
		} else if !info.Match {
			logger.Warn("image type mismatch", "row", info.Row, "declared", info.Declared, "sniffed", info.Sniffed)
		}
	}

	out, err := output.ToJSON(infos, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(out)
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the effective options as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := cfg.options()
			if err != nil {
				return fmt.Errorf("load options: %w", err)
			}
			out, err := imagepanel.MarshalOptionsYAML(opts)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func writeOutput(data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := os.Stdout.Write(data)
	return err
}
