package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nutriplan/internal/testutil"
)

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"generate", "validate", "export", "saved", "serve"} {
		assert.Contains(t, names, want)
	}
}

func TestValidateCommand_ValidPlan(t *testing.T) {
	path := writeTempFile(t, "plan.json", testutil.PlanJSON(7))

	out, err := executeCommand(t, "validate", "--store", "memory", path)
	require.NoError(t, err)
	assert.Contains(t, out, "NO ISSUES FOUND")
	assert.Contains(t, out, "valid 7-day plan")
}

func TestValidateCommand_StrictPlan(t *testing.T) {
	path := writeTempFile(t, "plan.json", testutil.PlanJSON(7))

	out, err := executeCommand(t, "validate", "--store", "memory", "--strict", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid 7-day plan")
}

func TestValidateCommand_ConsistencyErrors(t *testing.T) {
	plan := testutil.Plan(7)
	plan.WeeklyPlan[3].Lunch.Description = ""
	path := writeTempFile(t, "plan.json", mustJSON(t, plan))

	out, err := executeCommand(t, "validate", "--store", "memory", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consistency issues")
	assert.Contains(t, out, "empty_meal")
}

func TestValidateCommand_IncompletePlan(t *testing.T) {
	path := writeTempFile(t, "plan.json", testutil.PlanJSON(6))

	out, err := executeCommand(t, "validate", "--store", "memory", path)
	require.Error(t, err)
	assert.Contains(t, out, "is not a valid plan")
}

func TestValidateCommand_Profile(t *testing.T) {
	path := writeTempFile(t, "profile.yaml", "age: 28\nactivityLevel: active\n")

	out, err := executeCommand(t, "validate", "--store", "memory", "--profile", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is a valid profile")
}

func TestValidateCommand_RequiresArgument(t *testing.T) {
	_, err := executeCommand(t, "validate")
	assert.Error(t, err)
}

func TestExportCommand_RequiresSource(t *testing.T) {
	_, err := executeCommand(t, "export", "--store", "memory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provide either a plan file or --saved")
}

func TestSavedShow_Empty(t *testing.T) {
	out, err := executeCommand(t, "saved", "show", "--store", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved plan")
}

func TestSavedClear(t *testing.T) {
	out, err := executeCommand(t, "saved", "clear", "--store", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved plan cleared")
}

func TestGenerate_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := executeCommand(t, "generate", "--store", "memory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestGenerate_InvalidProfileFile(t *testing.T) {
	path := writeTempFile(t, "profile.yaml", "age: -3\n")

	_, err := executeCommand(t, "generate", "--store", "memory", "--api-key", "test", "--profile", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid profile")
}

func TestLoadConfig_InvalidLocaleFlag(t *testing.T) {
	path := writeTempFile(t, "plan.json", testutil.PlanJSON(7))

	_, err := executeCommand(t, "validate", "--locale", "fr", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, "", v))
	return buf.String()
}
