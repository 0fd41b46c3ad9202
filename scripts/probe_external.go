package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"person-api/internal/config"
	"person-api/internal/infra/genderize"
	"person-api/internal/infra/httpclient"
)

// LookupDiagnostic represents the diagnostic result for a single name lookup
type LookupDiagnostic struct {
	Name         string   `json:"name"`
	Status       string   `json:"status"` // "OK", "HTTP_ERROR", "TIMEOUT", "INVALID_NAME", "ERROR"
	HTTPCode     int      `json:"http_code,omitempty"`
	Gender       *string  `json:"gender,omitempty"`
	Probability  *float64 `json:"probability,omitempty"`
	Count        int64    `json:"count"`
	ResponseTime int64    `json:"response_time_ms"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

// defaultNames is looked up when no names are given on the command line.
var defaultNames = []string{
	"james", "olivia", "noah", "emma",
	"liam", "charlotte", "amelia", "oliver",
}

// lookupParallelism bounds concurrent lookups so the probe stays polite
// to the external service.
const lookupParallelism = 4

func main() {
	cfg, err := config.LoadExternalConfig()
	if err != nil {
		log.Fatalf("Failed to load external API configuration: %v", err)
	}

	pool := httpclient.NewPool(httpclient.Options{})
	if err := pool.Register(httpclient.Config{
		Name:    "genderize",
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}); err != nil {
		log.Fatalf("Failed to register lookup client: %v", err)
	}

	handle, err := pool.Acquire("genderize")
	if err != nil {
		log.Fatalf("Failed to acquire lookup client: %v", err)
	}
	client := genderize.New(handle, cfg.Retry, nil)

	// Reachability first: a dead endpoint makes per-name results meaningless
	probeCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	latency, err := client.Probe(probeCtx)
	cancel()
	if err != nil {
		log.Printf("⚠️  Service probe failed: %v", err)
	} else {
		log.Printf("Service reachable at %s (round trip %dms)", cfg.BaseURL, latency.Milliseconds())
	}

	names := os.Args[1:]
	if len(names) == 0 {
		names = defaultNames
	}

	log.Printf("Probing %d name lookups against %s...", len(names), cfg.BaseURL)

	diagnostics := probeNames(client, names)

	generateReport(diagnostics)
	generateJSONReport(diagnostics)
}

// probeNames looks up every name with bounded parallelism and returns one
// diagnostic per name, in input order.
func probeNames(client *genderize.Client, names []string) []LookupDiagnostic {
	diagnostics := make([]LookupDiagnostic, len(names))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(lookupParallelism)

	for i, name := range names {
		g.Go(func() error {
			diagnostics[i] = probeLookup(ctx, client, name)
			return nil
		})
	}

	// Workers never return errors; failures land in the diagnostics
	_ = g.Wait()
	return diagnostics
}

func probeLookup(ctx context.Context, client *genderize.Client, name string) LookupDiagnostic {
	diag := LookupDiagnostic{Name: name}

	startTime := time.Now()
	guess, err := client.Lookup(ctx, name)
	diag.ResponseTime = time.Since(startTime).Milliseconds()

	if err != nil {
		diag.ErrorMessage = err.Error()

		var callErr *genderize.CallError
		switch {
		case errors.Is(err, genderize.ErrInvalidParams):
			diag.Status = "INVALID_NAME"
		case errors.As(err, &callErr) && callErr.Kind == genderize.FailureStatus:
			diag.Status = "HTTP_ERROR"
			diag.HTTPCode = callErr.Status
		case errors.As(err, &callErr) && callErr.Kind == genderize.FailureTimeout:
			diag.Status = "TIMEOUT"
		default:
			diag.Status = "ERROR"
		}
		return diag
	}

	diag.Status = "OK"
	diag.Gender = guess.Gender
	diag.Probability = guess.Probability
	diag.Count = guess.Count
	return diag
}

// writef is a helper to write to file and handle errors
func writef(f *os.File, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(f, format, args...)
	return err
}

func generateReport(diagnostics []LookupDiagnostic) {
	f, err := os.Create("lookup_probe_report.txt")
	if err != nil {
		log.Printf("Failed to create report file: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close report file: %v", err)
		}
	}()

	// Helper to handle write errors
	writeErr := func(err error) bool {
		if err != nil {
			log.Printf("Failed to write to report: %v", err)
			return true
		}
		return false
	}

	if writeErr(writef(f, "===============================================\n")) {
		return
	}
	if writeErr(writef(f, "External Lookup Probe Report\n")) {
		return
	}
	if writeErr(writef(f, "Generated: %s\n", time.Now().Format(time.RFC3339))) {
		return
	}
	if writeErr(writef(f, "Total Lookups: %d\n", len(diagnostics))) {
		return
	}
	if writeErr(writef(f, "===============================================\n\n")) {
		return
	}

	// Summary statistics
	statusCount := make(map[string]int)
	var okCount, errorCount int
	for _, d := range diagnostics {
		statusCount[d.Status]++
		if d.Status == "OK" {
			okCount++
		} else {
			errorCount++
		}
	}

	_ = writef(f, "SUMMARY:\n")
	_ = writef(f, "  ✅ Succeeded: %d (%.1f%%)\n", okCount, float64(okCount)/float64(len(diagnostics))*100)
	_ = writef(f, "  ❌ Failed: %d (%.1f%%)\n", errorCount, float64(errorCount)/float64(len(diagnostics))*100)
	_ = writef(f, "\nSTATUS BREAKDOWN:\n")
	for status, count := range statusCount {
		_ = writef(f, "  %s: %d\n", status, count)
	}
	_ = writef(f, "\n")

	// Detailed results
	_ = writef(f, "DETAILED RESULTS:\n")
	_ = writef(f, "===============================================\n\n")

	_ = writef(f, "✅ SUCCESSFUL LOOKUPS (%d):\n", okCount)
	_ = writef(f, "-------------------------------------------\n")
	for _, d := range diagnostics {
		if d.Status != "OK" {
			continue
		}
		gender := "unknown"
		if d.Gender != nil {
			gender = *d.Gender
		}
		_ = writef(f, "Name: %s\n", d.Name)
		if d.Probability != nil {
			_ = writef(f, "  Gender: %s | Probability: %.2f | Count: %d\n", gender, *d.Probability, d.Count)
		} else {
			_ = writef(f, "  Gender: %s | Count: %d\n", gender, d.Count)
		}
		_ = writef(f, "  Response: %dms\n", d.ResponseTime)
		_ = writef(f, "\n")
	}

	_ = writef(f, "\n❌ FAILED LOOKUPS (%d):\n", errorCount)
	_ = writef(f, "-------------------------------------------\n")
	for _, d := range diagnostics {
		if d.Status == "OK" {
			continue
		}
		_ = writef(f, "Name: %s\n", d.Name)
		_ = writef(f, "  Status: %s | HTTP: %d\n", d.Status, d.HTTPCode)
		_ = writef(f, "  Error: %s\n", d.ErrorMessage)
		_ = writef(f, "  Response: %dms\n", d.ResponseTime)
		_ = writef(f, "\n")
	}

	log.Println("✅ Text report generated: lookup_probe_report.txt")
}

func generateJSONReport(diagnostics []LookupDiagnostic) {
	f, err := os.Create("lookup_probe_report.json")
	if err != nil {
		log.Printf("Failed to create JSON report: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close JSON report file: %v", err)
		}
	}()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(diagnostics); err != nil {
		log.Printf("Failed to write JSON report: %v", err)
		return
	}

	log.Println("✅ JSON report generated: lookup_probe_report.json")
}
