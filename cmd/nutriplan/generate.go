package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/nutriplan/internal/config"
	"github.com/jonathan/nutriplan/internal/observability"
	"github.com/jonathan/nutriplan/internal/pipeline"
	"github.com/jonathan/nutriplan/internal/progress"
	"github.com/jonathan/nutriplan/internal/store"
	"github.com/jonathan/nutriplan/internal/types"
	"github.com/jonathan/nutriplan/internal/validation"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a weekly nutrition plan",
	Long: `Generate a 7-day nutrition plan from a user profile.

The profile starts from defaults, then a --profile file (JSON or YAML), then individual flags.
Progress is reported day by day while the plan streams in. The plan is written as JSON to --out
(stdout by default) and can optionally be saved to the store and exported as a PDF.`,
	RunE: runGenerate,
}

var (
	genProfilePath string
	genAge         int
	genWeight      float64
	genHeight      float64
	genSleep       float64
	genGender      string
	genActivity    string
	genGoal        string
	genPortion     string
	genPreferences string
	genTier        string
	genProgress    string
	genAPIKey      string
	genStrict      bool
	genOutput      string
	genSave        bool
	genPDFDir      string
)

func init() {
	flags := generateCmd.Flags()
	flags.StringVarP(&genProfilePath, "profile", "p", "", "Path to a profile file (JSON or YAML)")
	flags.IntVar(&genAge, "age", 0, "Age in years")
	flags.Float64Var(&genWeight, "weight", 0, "Weight in kg")
	flags.Float64Var(&genHeight, "height", 0, "Height in cm")
	flags.Float64Var(&genSleep, "sleep", 0, "Average hours of sleep")
	flags.StringVar(&genGender, "gender", "", "Gender (male, female, other)")
	flags.StringVar(&genActivity, "activity", "", "Activity level (sedentary, light, moderate, active, very_active)")
	flags.StringVar(&genGoal, "goal", "", "Goal (lose_weight, maintain_weight, gain_muscle)")
	flags.StringVar(&genPortion, "portion", "", "Portion size (small, medium, large)")
	flags.StringVar(&genPreferences, "preferences", "", "Free-text dietary preferences and restrictions")
	flags.StringVar(&genTier, "tier", "", "Model tier (lite, standard, advanced)")
	flags.StringVar(&genProgress, "progress", "", "Progress strategy (marker, path)")
	flags.StringVar(&genAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	flags.BoolVar(&genStrict, "strict", false, "Reject plans whose days are out of weekday order")
	flags.StringVarP(&genOutput, "out", "o", "", "Write the plan JSON to this file instead of stdout")
	flags.BoolVar(&genSave, "save", false, "Save the plan to the configured store")
	flags.StringVar(&genPDFDir, "pdf", "", "Export the plan as a PDF into this directory")

	rootCmd.AddCommand(generateCmd)
}

// profileOverrides holds the profile fields that can be set from flags.
type profileOverrides struct {
	Age         int
	Weight      float64
	Height      float64
	Sleep       float64
	Gender      string
	Activity    string
	Goal        string
	Portion     string
	Preferences string
}

// apply copies every field whose flag changed onto profile.
func (o profileOverrides) apply(profile *types.UserProfile, changed func(name string) bool) {
	if changed("age") {
		profile.Age = o.Age
	}
	if changed("weight") {
		profile.WeightKg = o.Weight
	}
	if changed("height") {
		profile.HeightCm = o.Height
	}
	if changed("sleep") {
		profile.SleepHours = o.Sleep
	}
	if changed("gender") {
		profile.Gender = types.Gender(o.Gender)
	}
	if changed("activity") {
		profile.ActivityLevel = types.ActivityLevel(o.Activity)
	}
	if changed("goal") {
		profile.Goal = types.Goal(o.Goal)
	}
	if changed("portion") {
		profile.PortionSize = types.PortionSize(o.Portion)
	}
	if changed("preferences") {
		profile.Preferences = o.Preferences
	}
}

func resolveProfile(cmd *cobra.Command) (types.UserProfile, error) {
	profile := types.DefaultProfile()
	if genProfilePath != "" {
		loaded, err := config.LoadProfile(genProfilePath)
		if err != nil {
			return profile, err
		}
		profile = *loaded
	}

	overrides := profileOverrides{
		Age:         genAge,
		Weight:      genWeight,
		Height:      genHeight,
		Sleep:       genSleep,
		Gender:      genGender,
		Activity:    genActivity,
		Goal:        genGoal,
		Portion:     genPortion,
		Preferences: genPreferences,
	}
	overrides.apply(&profile, cmd.Flags().Changed)
	return profile, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("tier") {
		cfg.Tier = genTier
	}
	if cmd.Flags().Changed("progress") {
		cfg.Progress = genProgress
	}
	if genAPIKey != "" {
		cfg.APIKey = genAPIKey
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg)
	ui := NewUI(cmd.OutOrStdout(), cmd.ErrOrStderr())

	profile, err := resolveProfile(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aggregator, closer, err := newAggregator(ctx, cfg, logger, genStrict, nil)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	catalog := aggregator.Catalog()
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if cfg.Verbose {
		ui.Info("Model: %s", modelFor(cfg))
		printer.PrintProfile(&profile)
	}

	bar := ui.NewDayBar(types.DaysPerWeek, catalog.Starting)
	var spin *Spinner
	onProgress := func(event pipeline.ProgressEvent) {
		switch event.Stage {
		case progress.StageDay:
			bar.Advance(event.Day, event.Message)
		case progress.StageValidating:
			bar.Advance(event.Day, event.Message)
			bar.Finish()
			if spin == nil {
				spin = ui.NewSpinner(event.Message)
				spin.Start()
			}
		}
	}

	session := pipeline.NewSession(aggregator)
	plan, err := session.Generate(ctx, profile, onProgress)
	if spin != nil {
		spin.Stop()
	} else {
		bar.Abort()
	}
	if err != nil {
		logger.Debug().Err(err).Msg("generation failed")
		ui.Error("%s", pipeline.UserMessage(err, catalog))
		return err
	}
	ui.Success("Generated %d-day plan (%.0f kcal/day average)", len(plan.WeeklyPlan), plan.WeeklyPlan.AverageCalories())

	if cfg.Verbose {
		printer.PrintPlan(plan)
		printer.PrintViolations(validation.CheckConsistency(plan, validation.DefaultTotalsTolerance))
	}

	if err := writeJSON(cmd.OutOrStdout(), genOutput, plan); err != nil {
		return err
	}
	if genOutput != "" && genOutput != "-" {
		ui.Success("Plan written to %s", genOutput)
	}

	if genSave {
		if err := savePlan(ctx, cfg, plan); err != nil {
			ui.Error("%s", catalog.SaveFailed)
			return err
		}
		ui.Success("%s", catalog.Saved)
	}

	if genPDFDir != "" {
		exporter := newExporter(cfg, logger, nil)
		path, err := exporter.WriteFile(ctx, plan, genPDFDir)
		if err != nil {
			ui.Error("%s", catalog.ExportFailed)
			return err
		}
		ui.Success("PDF written to %s", path)
	}

	return nil
}

func savePlan(ctx context.Context, cfg config.Config, plan *types.PlanResponse) error {
	planStore, err := store.Open(ctx, cfg.StoreConfig(), newLogger(cfg))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = planStore.Close() }()

	return planStore.Save(ctx, types.NewSavedPlan(plan))
}

// modelFor returns the model that will serve tier, for display.
func modelFor(cfg config.Config) string {
	return cfg.ModelConfig().GetModel(cfg.TierValue())
}
