package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/nutriplan/internal/store"
	"github.com/jonathan/nutriplan/internal/types"
)

var (
	exportFromSaved bool
	exportDir       string
)

var exportCmd = &cobra.Command{
	Use:   "export [plan.json]",
	Short: "Export a plan as a paginated PDF",
	Long: `Render a plan document and export it as an A4 PDF.

The plan is read from the given file, or from the configured store with --saved. The document is
rendered in a headless Chrome instance, so Chrome or Chromium must be installed (see CHROME_PATH).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportFromSaved, "saved", false, "Export the saved plan instead of a file")
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "Directory to write the PDF into")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFromSaved == (len(args) == 1) {
		return fmt.Errorf("provide either a plan file or --saved")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ui := NewUI(cmd.OutOrStdout(), cmd.ErrOrStderr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var plan *types.PlanResponse
	if exportFromSaved {
		planStore, err := store.Open(ctx, cfg.StoreConfig(), logger)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer func() { _ = planStore.Close() }()

		saved, err := planStore.Load(ctx)
		if err != nil {
			return err
		}
		if saved == nil {
			return fmt.Errorf("no saved plan")
		}
		plan = saved.Response()
	} else {
		plan, err = readPlanFile(args[0], nil)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	spin := ui.NewSpinner("Rendering PDF...")
	spin.Start()
	path, err := newExporter(cfg, logger, nil).WriteFile(ctx, plan, exportDir)
	spin.Stop()
	if err != nil {
		return err
	}

	ui.Success("PDF written to %s", path)
	return nil
}
