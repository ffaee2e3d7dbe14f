//go:build ignore
// +build ignore

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"user-rest-service/test/benchmark"
)

func main() {
	// Parse command line flags
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the running service")
	token := flag.String("token", "valid-token-example", "Bearer token for authenticated routes")
	duration := flag.Duration("duration", 30*time.Second, "Load duration per scenario")
	concurrency := flag.Int("concurrency", 10, "Number of concurrent workers")
	warmup := flag.Duration("warmup", 5*time.Second, "Warmup duration")
	output := flag.String("output", "table", "Output format (table|json)")
	outputFile := flag.String("file", "", "Output file (optional)")
	noWarmup := flag.Bool("no-warmup", false, "Disable warmup")

	flag.Parse()

	// Create load configuration
	config := &benchmark.LoadConfig{
		BaseURL:        *baseURL,
		Token:          *token,
		Duration:       *duration,
		Concurrency:    *concurrency,
		WarmupDuration: *warmup,
		OutputFormat:   *output,
		OutputFile:     *outputFile,
		EnableWarmup:   !*noWarmup,
	}

	// Print configuration
	fmt.Printf("Load Test Configuration:\n")
	fmt.Printf("  Target: %s\n", config.BaseURL)
	fmt.Printf("  Duration: %v\n", config.Duration)
	fmt.Printf("  Concurrency: %d\n", config.Concurrency)
	fmt.Printf("  Warmup: %v (enabled: %t)\n", config.WarmupDuration, config.EnableWarmup)
	fmt.Printf("  Output Format: %s\n", config.OutputFormat)
	if config.OutputFile != "" {
		fmt.Printf("  Output File: %s\n", config.OutputFile)
	}
	fmt.Println()

	// Run load scenarios
	runner := benchmark.NewLoadRunner(config)
	reports, err := runner.RunAll()
	if err != nil {
		fmt.Printf("Error running load test: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nLoad test completed successfully!\n")
	fmt.Printf("Scenarios run: %d\n", len(reports))

	// Print summary
	if len(reports) > 0 {
		var avgThroughput float64
		for _, report := range reports {
			avgThroughput += report.Throughput.RequestsPerSecond
		}
		avgThroughput /= float64(len(reports))
		fmt.Printf("Average throughput: %.0f req/s\n", avgThroughput)
	}
}
