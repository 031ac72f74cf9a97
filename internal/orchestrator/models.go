package orchestrator

import "archcompare/internal/loader"

// Config contains all the parameters needed for a comparison run.
type Config struct {
	Inputs       loader.Paths // Baseline, enhanced and reasoning documents
	OutputPath   string       // Where the comparison artifact is written
	CSVPath      string       // Optional export of the architecture table
	OutputFormat string       // Output format (json or table)
}

// RunResult is the outcome of a comparison run.
type RunResult struct {
	Records       int
	Differences   int
	Architectures int
	Identical     int
}
