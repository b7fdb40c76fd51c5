package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/nutriplan/internal/testutil"
)

func TestCLI_Help(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "--help")
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command should succeed")
	assert.Contains(t, string(output), "generate")
	assert.Contains(t, string(output), "serve")
}

func TestCLI_ValidateSuccess(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeTempFile(t, "plan.json", testutil.PlanJSON(7))

	cmd := exec.Command(binaryPath, "validate", "--store", "memory", path)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command should succeed")
	assert.Contains(t, string(output), "valid 7-day plan")
}

func TestCLI_ValidateFailure(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeTempFile(t, "plan.json", `{"weeklyPlan": []}`)

	cmd := exec.Command(binaryPath, "validate", "--store", "memory", path)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "Error:")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode(), "should exit with code 1 on validation failure")
	}
}
