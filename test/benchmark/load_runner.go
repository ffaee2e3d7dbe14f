package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// LoadConfig holds configuration for load runs against a running service
type LoadConfig struct {
	BaseURL        string        `json:"base_url"`
	Token          string        `json:"token"`
	Duration       time.Duration `json:"duration"`
	Concurrency    int           `json:"concurrency"`
	WarmupDuration time.Duration `json:"warmup_duration"`
	OutputFormat   string        `json:"output_format"`
	OutputFile     string        `json:"output_file"`
	EnableWarmup   bool          `json:"enable_warmup"`
}

// DefaultLoadConfig returns default load configuration
func DefaultLoadConfig() *LoadConfig {
	return &LoadConfig{
		BaseURL:        "http://localhost:8080",
		Token:          "valid-token-example",
		Duration:       30 * time.Second,
		Concurrency:    10,
		WarmupDuration: 5 * time.Second,
		OutputFormat:   "table",
		OutputFile:     "",
		EnableWarmup:   true,
	}
}

// LoadRunner drives the HTTP API with concurrent workers and collects
// latency samples per scenario.
type LoadRunner struct {
	config *LoadConfig
	client *http.Client
	seq    atomic.Int64
}

// NewLoadRunner creates a new load runner
func NewLoadRunner(config *LoadConfig) *LoadRunner {
	if config == nil {
		config = DefaultLoadConfig()
	}
	return &LoadRunner{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// scenario is one operation driven repeatedly for the configured duration.
type scenario struct {
	name     string
	endpoint string
	run      func(ctx context.Context) error
}

// RunAll executes every load scenario against the configured service
func (lr *LoadRunner) RunAll() ([]*LoadReport, error) {
	if err := lr.checkHealth(); err != nil {
		return nil, fmt.Errorf("service not reachable at %s: %w", lr.config.BaseURL, err)
	}

	// One long-lived record for the read and update scenarios
	seedID, err := lr.createUser(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to seed user: %w", err)
	}

	scenarios := []scenario{
		{"CreateUser", "POST /users", lr.runCreateUser},
		{"GetUser", "GET /users/{id}", func(ctx context.Context) error { return lr.runGetUser(ctx, seedID) }},
		{"UpdateUser", "PUT /users/{id}", func(ctx context.Context) error { return lr.runUpdateUser(ctx, seedID) }},
		{"DeleteUser", "POST+DELETE /users/{id}", lr.runCreateDeleteUser},
		{"ListUsers", "GET /users", lr.runListUsers},
		{"MixedWorkload", "mixed", func(ctx context.Context) error { return lr.runMixedWorkload(ctx, seedID) }},
	}

	var reports []*LoadReport
	for _, sc := range scenarios {
		fmt.Printf("  Running %s...\n", sc.name)
		report := lr.runScenario(sc)
		report.PrintReport()
		report.CheckAgainstTargets(DefaultTargets)
		reports = append(reports, report)
	}

	if lr.config.OutputFile != "" {
		lr.saveReports(reports)
	}

	return reports, nil
}

// runScenario executes a single scenario with warmup and concurrent workers
func (lr *LoadRunner) runScenario(sc scenario) *LoadReport {
	if lr.config.EnableWarmup {
		fmt.Printf("    Warming up (%v)...\n", lr.config.WarmupDuration)
		warmupCtx, cancel := context.WithTimeout(context.Background(), lr.config.WarmupDuration)
		for warmupCtx.Err() == nil {
			_ = sc.run(warmupCtx)
		}
		cancel()
	}

	fmt.Printf("    Running load for %v...\n", lr.config.Duration)

	ctx, cancel := context.WithTimeout(context.Background(), lr.config.Duration)
	defer cancel()

	var wg sync.WaitGroup
	results := make(chan *MetricsCollector, lr.config.Concurrency)

	for i := 0; i < lr.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			workerCollector := NewMetricsCollector()

			for {
				select {
				case <-ctx.Done():
					results <- workerCollector
					return
				default:
					start := time.Now()
					if err := sc.run(ctx); err != nil {
						// Requests cut off by the deadline are not failures
						if ctx.Err() == nil {
							workerCollector.RecordError()
						}
					} else {
						workerCollector.RecordLatency(time.Since(start))
					}
				}
			}
		}()
	}

	wg.Wait()
	close(results)

	collector := NewMetricsCollector()
	for workerCollector := range results {
		collector.Merge(workerCollector)
	}

	return collector.GenerateReport(sc.name, sc.endpoint)
}

// Scenario implementations

func (lr *LoadRunner) runCreateUser(ctx context.Context) error {
	_, err := lr.createUser(ctx)
	return err
}

func (lr *LoadRunner) runGetUser(ctx context.Context, id int64) error {
	resp, err := lr.doJSON(ctx, "GET", fmt.Sprintf("/users/%d", id), nil)
	if err != nil {
		return err
	}
	return drainAndCheck(resp, http.StatusOK)
}

func (lr *LoadRunner) runUpdateUser(ctx context.Context, id int64) error {
	body := map[string]interface{}{
		"id":       id,
		"username": fmt.Sprintf("load_update_%d", lr.seq.Add(1)),
		"userage":  31,
	}
	resp, err := lr.doJSON(ctx, "PUT", fmt.Sprintf("/users/%d", id), body)
	if err != nil {
		return err
	}
	return drainAndCheck(resp, http.StatusOK)
}

func (lr *LoadRunner) runCreateDeleteUser(ctx context.Context) error {
	id, err := lr.createUser(ctx)
	if err != nil {
		return err
	}

	resp, err := lr.doJSON(ctx, "DELETE", fmt.Sprintf("/users/%d", id), nil)
	if err != nil {
		return err
	}
	return drainAndCheck(resp, http.StatusOK)
}

func (lr *LoadRunner) runListUsers(ctx context.Context) error {
	resp, err := lr.doJSON(ctx, "GET", "/users", nil)
	if err != nil {
		return err
	}
	return drainAndCheck(resp, http.StatusOK)
}

func (lr *LoadRunner) runMixedWorkload(ctx context.Context, seedID int64) error {
	switch lr.seq.Add(1) % 4 {
	case 0:
		return lr.runCreateUser(ctx)
	case 1:
		return lr.runGetUser(ctx, seedID)
	case 2:
		return lr.runUpdateUser(ctx, seedID)
	default:
		return lr.runListUsers(ctx)
	}
}

// createUser creates a user with a unique username and returns its id
func (lr *LoadRunner) createUser(ctx context.Context) (int64, error) {
	body := map[string]interface{}{
		"username": fmt.Sprintf("load_user_%d", lr.seq.Add(1)),
		"userage":  30,
	}

	resp, err := lr.doJSON(ctx, "POST", "/users", body)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("expected status 201, got %d", resp.StatusCode)
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("failed to decode create response: %w", err)
	}

	return created.ID, nil
}

// checkHealth verifies the service answers on its health endpoint
func (lr *LoadRunner) checkHealth() error {
	resp, err := lr.doJSON(context.Background(), "GET", "/health", nil)
	if err != nil {
		return err
	}
	return drainAndCheck(resp, http.StatusOK)
}

// doJSON sends an authenticated request with an optional JSON body
func (lr *LoadRunner) doJSON(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, lr.config.BaseURL+endpoint, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+lr.config.Token)

	return lr.client.Do(req)
}

// drainAndCheck consumes the response body and verifies the status code
func drainAndCheck(resp *http.Response, want int) error {
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != want {
		return fmt.Errorf("expected status %d, got %d", want, resp.StatusCode)
	}
	return nil
}

// saveReports saves load reports to file
func (lr *LoadRunner) saveReports(reports []*LoadReport) {
	var output string

	switch lr.config.OutputFormat {
	case "json":
		output = "[\n"
		for i, report := range reports {
			jsonStr, err := report.ToJSON()
			if err != nil {
				fmt.Printf("Error converting report %s to JSON: %v\n", report.Scenario, err)
				continue
			}
			output += jsonStr
			if i < len(reports)-1 {
				output += ",\n"
			}
		}
		output += "\n]"
	default: // table format
		output = lr.generateTableFormat(reports)
	}

	err := os.WriteFile(lr.config.OutputFile, []byte(output), 0644)
	if err != nil {
		fmt.Printf("Error saving reports to file %s: %v\n", lr.config.OutputFile, err)
	} else {
		fmt.Printf("\nLoad reports saved to: %s\n", lr.config.OutputFile)
	}
}

// generateTableFormat creates a table-formatted report
func (lr *LoadRunner) generateTableFormat(reports []*LoadReport) string {
	output := "Load Test Results Summary\n"
	output += strings.Repeat("=", 80) + "\n"
	output += fmt.Sprintf("%-15s %-12s %-12s %-12s %-15s %-10s\n",
		"Scenario", "P50 (ms)", "P99 (ms)", "Throughput", "Success Rate", "Errors")
	output += strings.Repeat("-", 80) + "\n"

	for _, report := range reports {
		output += fmt.Sprintf("%-15s %-12.2f %-12.2f %-12.0f %-15.2f %-10d\n",
			report.Scenario,
			float64(report.Latency.P50.Nanoseconds())/1e6,
			float64(report.Latency.P99.Nanoseconds())/1e6,
			report.Throughput.RequestsPerSecond,
			report.SuccessRate,
			report.ErrorCount)
	}

	return output
}
