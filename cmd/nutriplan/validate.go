package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/nutriplan/internal/config"
	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/observability"
	"github.com/jonathan/nutriplan/internal/schemas"
	"github.com/jonathan/nutriplan/internal/validation"
	contracts "github.com/jonathan/nutriplan/schemas"
)

var (
	validateStrict  bool
	validateProfile bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <plan.json>",
	Short: "Validate a plan document",
	Long: `Validate a plan document against the plan schema and check its internal consistency.

The shallow check requires 7 days and a sleep recommendation. --strict also requires every entry
to be fully populated and the days to follow weekday order in the configured locale. Consistency
findings (daily totals that disagree with the food glossary, empty meals) are printed as a report.

With --profile the file is checked as a user profile instead (JSON Schema for .json files, then
field range checks).`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Enable strict schema and weekday order checks")
	validateCmd.Flags().BoolVar(&validateProfile, "profile", false, "Validate a user profile file instead of a plan")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ui := NewUI(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if validateProfile {
		if err := validateProfileFile(args[0]); err != nil {
			ui.Error("%s is not a valid profile", args[0])
			return err
		}
		ui.Success("%s is a valid profile", args[0])
		return nil
	}

	validator := validation.Shallow
	if validateStrict {
		validator = validation.Strict(messages.For(cfg.LocaleValue()).Weekdays)
	}

	plan, err := readPlanFile(args[0], validator)
	if err != nil {
		ui.Error("%s is not a valid plan", args[0])
		return err
	}

	result := validation.CheckConsistency(plan, validation.DefaultTotalsTolerance)
	observability.NewPrinter(cmd.OutOrStdout()).PrintViolations(result)
	if result.HasErrors() {
		return fmt.Errorf("plan has %d consistency issues", len(result.Violations))
	}

	ui.Success("%s is a valid %d-day plan", args[0], len(plan.WeeklyPlan))
	return nil
}

// validateProfileFile checks a profile document. JSON files are checked against the profile schema first.
func validateProfileFile(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := schemas.ValidateJSON(contracts.UserProfile, path); err != nil {
			return err
		}
	}
	_, err := config.LoadProfile(path)
	return err
}
