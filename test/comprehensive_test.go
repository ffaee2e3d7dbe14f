package test

import (
	"os"
	"testing"
)

// TestComprehensive runs the categorized suite plus tool checks. It shells
// out to go test, so it only runs when RUN_COMPREHENSIVE=1 is set.
func TestComprehensive(t *testing.T) {
	if os.Getenv("RUN_COMPREHENSIVE") == "" {
		t.Skip("set RUN_COMPREHENSIVE=1 to run the comprehensive suite")
	}

	// Child go test processes inherit the gate; clear it so they skip.
	t.Setenv("RUN_COMPREHENSIVE", "")

	t.Run("Environment", Environment)
	AllComprehensive(t)
}
