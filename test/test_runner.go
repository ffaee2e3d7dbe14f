package test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Runner runs all test cases in the project with comprehensive reporting.
// It executes unit tests, extended unit tests, and integration tests with proper categorization.
func Runner(t *testing.T) {
	fmt.Println("Starting comprehensive test suite...")
	fmt.Println(strings.Repeat("=", 60))

	startTime := time.Now()

	// Test categories
	testCategories := []struct {
		name        string
		description string
		pattern     string
		timeout     time.Duration
	}{
		{
			name:        "Unit Tests",
			description: "Testing store, use case, handler, and middleware behavior",
			pattern:     "./internal/...",
			timeout:     60 * time.Second,
		},
		{
			name:        "Package Tests",
			description: "Testing shared error, logging, and security helpers",
			pattern:     "./pkg/...",
			timeout:     30 * time.Second,
		},
		{
			name:        "Integration Tests",
			description: "Testing API endpoints and workflows over HTTP",
			pattern:     "./test/integration/...",
			timeout:     120 * time.Second,
		},
	}

	var totalPassed, totalFailed int
	var failedTests []string

	for _, category := range testCategories {
		fmt.Printf("\nRunning %s\n", category.name)
		fmt.Printf("   %s\n", category.description)
		fmt.Println(strings.Repeat("-", 50))

		// Run tests for this category
		passed, failed, errors := runTestCategory(t, category.pattern, category.timeout)

		totalPassed += passed
		totalFailed += failed

		if len(errors) > 0 {
			failedTests = append(failedTests, errors...)
		}

		fmt.Printf("Passed: %d | Failed: %d\n", passed, failed)
	}

	// Summary
	totalTests := totalPassed + totalFailed
	duration := time.Since(startTime)
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("TEST SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total Tests: %d\n", totalTests)
	if totalTests > 0 {
		fmt.Printf("Passed: %d (%.1f%%)\n", totalPassed, float64(totalPassed)/float64(totalTests)*100)
		fmt.Printf("Failed: %d (%.1f%%)\n", totalFailed, float64(totalFailed)/float64(totalTests)*100)
	}
	fmt.Printf("Duration: %v\n", duration.Round(time.Millisecond))

	if totalFailed > 0 {
		fmt.Println("\nFAILED TESTS:")
		for _, failed := range failedTests {
			fmt.Printf("   - %s\n", failed)
		}
		fmt.Println("\nSome tests failed. Please check the output above for details.")
		t.Fail()
	} else {
		fmt.Println("\nAll tests passed!")
	}
}

// runTestCategory chạy tests cho một package pattern cụ thể
func runTestCategory(t *testing.T, pattern string, timeout time.Duration) (passed, failed int, errors []string) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", "test", "-v", "-race", pattern) // #nosec G204
	cmd.Dir = projectRoot(t)

	output, err := cmd.CombinedOutput()

	// Count individual test results from the verbose output
	for _, line := range strings.Split(string(output), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "--- PASS:"):
			passed++
		case strings.HasPrefix(trimmed, "--- FAIL:"):
			failed++
			errors = append(errors, strings.TrimPrefix(trimmed, "--- FAIL: "))
		}
	}

	if err != nil && failed == 0 {
		// Build errors or package-level failures with no per-test lines
		fmt.Printf("FAILED: %s\n", pattern)
		fmt.Printf("   Error: %v\n", err)
		fmt.Printf("   Output: %s\n", string(output))
		failed++
		errors = append(errors, fmt.Sprintf("%s: %v", pattern, err))
	}

	return passed, failed, errors
}

// projectRoot walks up from the working directory to the directory holding
// go.mod, so the helpers work no matter which package invokes them.
func projectRoot(t *testing.T) string {
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Error resolving working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}

// Coverage chạy test và generate coverage report
func Coverage(t *testing.T) {
	fmt.Println("Running tests with coverage analysis...")

	root := projectRoot(t)

	// Run tests with coverage
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "go", "test", "-race", "-coverprofile=coverage.out", "-covermode=atomic", "./internal/...", "./pkg/...")
	cmd.Dir = root

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Errorf("Error running tests with coverage: %v\nOutput: %s", err, string(output))
		return
	}

	fmt.Println(string(output))

	// Generate HTML coverage report
	cmd = exec.CommandContext(ctx, "go", "tool", "cover", "-html=coverage.out", "-o=coverage.html")
	cmd.Dir = root

	err = cmd.Run()
	if err != nil {
		t.Errorf("Error generating HTML coverage: %v", err)
		return
	}

	fmt.Println("Coverage report generated: coverage.html")
}

// Benchmark chạy performance benchmarks
func Benchmark(t *testing.T) {
	fmt.Println("Running performance benchmarks...")

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "go", "test", "-bench=.", "-benchmem", "-run=^$", "./test/benchmark/...")
	cmd.Dir = projectRoot(t)

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Errorf("Error running benchmarks: %v\nOutput: %s", err, string(output))
		return
	}

	fmt.Println(string(output))
}

// RaceCondition chạy race condition detection
func RaceCondition(t *testing.T) {
	fmt.Println("Running race condition detection...")

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "go", "test", "-race", "-short", "./internal/...", "./pkg/...")
	cmd.Dir = projectRoot(t)

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Errorf("Race condition detected: %v\nOutput: %s", err, string(output))
		return
	}

	fmt.Println("No race conditions detected")
}

// Linting chạy code quality checks
func Linting(t *testing.T) {
	fmt.Println("Running code quality checks...")

	if !checkTool("golangci-lint") {
		fmt.Println("golangci-lint not found. Skipping linting.")
		return
	}

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "golangci-lint", "run", "./...")
	cmd.Dir = projectRoot(t)

	output, err := cmd.CombinedOutput()
	if err != nil {
		fmt.Printf("Linting issues found:\n%s\n", string(output))
		// Don't fail the test for linting issues, just report them
		return
	}

	fmt.Println("Code quality checks passed")
}

// Security chạy security vulnerability scan
func Security(t *testing.T) {
	fmt.Println("Running security vulnerability scan...")

	if !checkTool("gosec") {
		fmt.Println("gosec not found. Skipping security scan.")
		return
	}

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "gosec", "./...")
	cmd.Dir = projectRoot(t)

	output, err := cmd.CombinedOutput()
	if err != nil {
		fmt.Printf("Security issues found:\n%s\n", string(output))
		// Don't fail the test for security issues, just report them
		return
	}

	fmt.Println("Security scan passed")
}

// Dependencies kiểm tra dependencies vulnerabilities
func Dependencies(t *testing.T) {
	fmt.Println("Checking for vulnerable dependencies...")

	if !checkTool("govulncheck") {
		fmt.Println("govulncheck not found. Skipping vulnerability check.")
		return
	}

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "govulncheck", "./...")
	cmd.Dir = projectRoot(t)

	output, err := cmd.CombinedOutput()
	if err != nil {
		fmt.Printf("Vulnerability check failed:\n%s\n", string(output))
		return
	}

	fmt.Println("No known vulnerabilities found")
}

// AllComprehensive chạy tất cả test types
func AllComprehensive(t *testing.T) {
	fmt.Println("Running comprehensive test suite...")

	t.Run("UnitAndIntegration", Runner)
	t.Run("Coverage", Coverage)
	t.Run("Benchmarks", Benchmark)
	t.Run("RaceConditions", RaceCondition)
	t.Run("Linting", Linting)
	t.Run("Security", Security)
	t.Run("Dependencies", Dependencies)

	fmt.Println("\nComprehensive test suite completed!")
}

// Helper function to check if required tools are installed
func checkTool(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}

// Environment kiểm tra môi trường test
func Environment(t *testing.T) {
	fmt.Println("Checking test environment...")

	// Check Go version
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "go", "version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Errorf("Error checking Go version: %v", err)
		return
	}
	fmt.Printf("Go version: %s", string(output))

	// Check project layout
	root := projectRoot(t)
	fmt.Printf("Project root: %s\n", root)

	// Check required tools
	for _, tool := range []string{"go", "git"} {
		if !checkTool(tool) {
			t.Errorf("Required tool not found: %s", tool)
		}
	}

	// Check optional tools
	fmt.Println("\nOptional tools:")
	for _, tool := range []string{"golangci-lint", "gosec", "govulncheck"} {
		if checkTool(tool) {
			fmt.Printf("%s is installed\n", tool)
		} else {
			fmt.Printf("%s is not installed (optional)\n", tool)
		}
	}

	fmt.Println("Test environment is ready")
}
