// Package main provides a performance benchmarking tool for the Gamepulse CLI.
// It measures execution times of every report command and the dashboard
// against the CSV extracts and their Parquet export, running each command
// multiple times and averaging the runs, then writes a CSV for documentation.
//
// Prerequisites:
// - gamepulse binary installed and available in PATH
// - A data directory holding the six CSV extracts
//
// Usage: go run benchmark/main.go [data-dir]
//
//	data-dir: Directory containing the CSV extracts
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run for one command and source.
type BenchmarkResult struct {
	Source   string
	Command  string
	FirstRun string
	AvgTime  string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataDir    string
	ParquetDir string
	Timeout    time.Duration
	Runs       int
	Commands   [][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [data-dir]\n", os.Args[0])
		os.Exit(1)
	}
	dataDir := os.Args[1]

	parquetDir, err := os.MkdirTemp("", "gamepulse-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create Parquet directory: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(parquetDir) }()

	config := BenchmarkConfig{
		DataDir:    dataDir,
		ParquetDir: parquetDir,
		Timeout:    2 * time.Minute,
		Runs:       5,
		Commands: [][]string{
			{"retention"},
			{"loserate"},
			{"players-left"},
			{"level-duration"},
			{"level-duration", "--country", "US,IN"},
			{"session-duration"},
			{"guns", "--rating", "Top-10"},
			{"dashboard"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exporting datasets to %s...\n", parquetDir)
	exportCmd := exec.Command("gamepulse", "datasets", "export", "--data-dir", dataDir, "--output-file", parquetDir)
	if output, err := exportCmd.CombinedOutput(); err != nil {
		fmt.Printf("Failed to export datasets: %v\nOutput: %s\n", err, string(output))
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the gamepulse binary and data directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("gamepulse"); err != nil {
		return fmt.Errorf("gamepulse binary not found in PATH")
	}
	info, err := os.Stat(config.DataDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("data directory not found at %s", config.DataDir)
	}
	return nil
}

// runBenchmarks executes every command against both source formats
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d commands, %v timeout, %d runs\n",
		len(config.Commands), config.Timeout, config.Runs)

	sources := []struct{ format, dir string }{
		{"csv", config.DataDir},
		{"parquet", config.ParquetDir},
	}
	for _, src := range sources {
		fmt.Printf("Benchmarking %s source\n", src.format)
		for _, command := range config.Commands {
			args := append([]string{}, command...)
			args = append(args, "--source", src.format, "--data-dir", src.dir, "--output", "json")
			results = append(results, runBenchmarkSuite(config, src.format, args))
		}
	}
	return results
}

// runBenchmarkSuite runs one command several times and summarizes the timings
func runBenchmarkSuite(config BenchmarkConfig, source string, args []string) BenchmarkResult {
	label := fmt.Sprint(args[:len(args)-6])
	fmt.Printf("  %s (%d runs)\n", label, config.Runs)

	times := runBenchmark(config, args)
	result := BenchmarkResult{Source: source, Command: label, FirstRun: "TIMEOUT", AvgTime: "TIMEOUT"}
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		result.FirstRun = fmt.Sprintf("%.3fs", times[0])
		result.AvgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}
	fmt.Printf("    First run: %s, Average: %s\n", result.FirstRun, result.AvgTime)
	return result
}

// runBenchmark executes a gamepulse command multiple times and returns the successful run times
func runBenchmark(config BenchmarkConfig, args []string) []float64 {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("gamepulse", args...)

		done := make(chan error, 1)
		go func() {
			_, err := cmd.Output()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}
	return times
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("gamepulse_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"source", "cmd", "first_run", "avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Source, result.Command, result.FirstRun, result.AvgTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, source := range []string{"csv", "parquet"} {
		fmt.Printf("%s source:\n", source)
		for _, result := range results {
			if result.Source == source {
				fmt.Printf("  %-40s: First: %s, Average: %s\n", result.Command, result.FirstRun, result.AvgTime)
			}
		}
	}
}
