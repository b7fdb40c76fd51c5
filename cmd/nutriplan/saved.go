package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/nutriplan/internal/observability"
	"github.com/jonathan/nutriplan/internal/store"
)

var savedJSON bool

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Inspect or clear the saved plan",
}

var savedShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved plan",
	Args:  cobra.NoArgs,
	RunE:  runSavedShow,
}

var savedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved plan",
	Args:  cobra.NoArgs,
	RunE:  runSavedClear,
}

func init() {
	savedShowCmd.Flags().BoolVar(&savedJSON, "json", false, "Print the plan as JSON")
	savedCmd.AddCommand(savedShowCmd, savedClearCmd)
	rootCmd.AddCommand(savedCmd)
}

func openStore(cmd *cobra.Command) (*store.PlanStore, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	planStore, err := store.Open(cmd.Context(), cfg.StoreConfig(), newLogger(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return planStore, nil
}

func runSavedShow(cmd *cobra.Command, _ []string) error {
	planStore, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	saved, err := planStore.Load(cmd.Context())
	if err != nil {
		return err
	}
	ui := NewUI(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if saved == nil {
		ui.Info("No saved plan")
		return nil
	}

	plan := saved.Response()
	if savedJSON {
		return writeJSON(cmd.OutOrStdout(), "", plan)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintPlan(plan)
	for _, day := range plan.WeeklyPlan {
		printer.PrintDay(day)
	}
	return nil
}

func runSavedClear(cmd *cobra.Command, _ []string) error {
	planStore, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	if err := planStore.Clear(cmd.Context()); err != nil {
		return err
	}
	NewUI(cmd.OutOrStdout(), cmd.ErrOrStderr()).Success("Saved plan cleared")
	return nil
}
