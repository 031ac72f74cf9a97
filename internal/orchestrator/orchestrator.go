package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"archcompare/internal/artifact"
	"archcompare/internal/compare"
	"archcompare/internal/loader"
	"archcompare/internal/models"
	"archcompare/internal/report"
	"archcompare/pkg/logging"
)

// Service orchestrates a comparator run.
type Service struct {
	config        Config
	loader        loader.DocumentLoader
	store         artifact.IStore
	reportPrinter report.IPrinter
	logger        logging.Logger
}

// NewService creates a new orchestrator service with the given configuration.
func NewService(
	config Config,
	documentLoader loader.DocumentLoader,
	store artifact.IStore,
	reportPrinter report.IPrinter,
	logger logging.Logger,
) *Service {
	return &Service{
		config:        config,
		loader:        documentLoader,
		store:         store,
		reportPrinter: reportPrinter,
		logger:        logger,
	}
}

// NewDefaultService creates a new service with default implementations of dependencies
func NewDefaultService(config Config, logger logging.Logger) *Service {
	return NewService(
		config,
		loader.NewLoaderWithLogger(logger),
		artifact.NewFileStore(logger),
		report.DefaultPrinter{},
		logger,
	)
}

// Run loads the four input documents, compares them and persists the
// artifact. It reports whether any difference was found.
func (s *Service) Run(ctx context.Context) (bool, error) {
	// Validate configuration
	if err := s.validateConfig(); err != nil {
		return false, err
	}

	s.logger.Info("Loading comparison inputs")
	docs, err := loader.LoadAll(ctx, s.loader, s.config.Inputs)
	if err != nil {
		return false, fmt.Errorf("error loading comparison inputs: %w", err)
	}

	result, err := s.compare(docs)
	if err != nil {
		return false, err
	}

	if err := s.store.Write(s.config.OutputPath, result); err != nil {
		return false, fmt.Errorf("error writing comparison artifact: %w", err)
	}

	if s.config.CSVPath != "" {
		if err := s.store.WriteCSV(s.config.CSVPath, result.Architectures); err != nil {
			return false, fmt.Errorf("error exporting architecture table: %w", err)
		}
	}

	if err := s.reportPrinter.PrintReport(result, s.getOutputFormat()); err != nil {
		return false, fmt.Errorf("error generating report: %w", err)
	}

	s.generateSummaryReport(summarize(result))

	return result.HasDifferences(), nil
}

// compare builds the artifact from loaded documents. A document that does not
// follow the architecture-set layout only drops the architecture table.
func (s *Service) compare(docs *loader.Documents) (*models.Artifact, error) {
	s.warnEmpty(docs)

	records, err := compare.CompareDocuments(docs.Baseline, docs.Enhanced, docs.BaselineReasoning, docs.EnhancedReasoning)
	if err != nil {
		return nil, fmt.Errorf("error comparing documents: %w", err)
	}
	s.logger.Debug("Compared %d paths", len(records))

	rows, err := compare.CompareArchitectures(docs.Baseline, docs.Enhanced, docs.BaselineReasoning, docs.EnhancedReasoning)
	if err != nil {
		s.logger.Warn("Skipping architecture table: %v", err)
		rows = nil
	}

	inputs := models.Inputs{
		Baseline:          s.config.Inputs.Baseline,
		Enhanced:          s.config.Inputs.Enhanced,
		BaselineReasoning: s.config.Inputs.BaselineReasoning,
		EnhancedReasoning: s.config.Inputs.EnhancedReasoning,
	}
	return artifact.Build(inputs, records, rows), nil
}

// warnEmpty flags inputs that decoded to nothing. Every path of the other
// side then shows up as one-sided, which usually means a failed generator run.
func (s *Service) warnEmpty(docs *loader.Documents) {
	inputs := []struct {
		name string
		path string
		doc  *models.Document
	}{
		{"baseline", s.config.Inputs.Baseline, docs.Baseline},
		{"enhanced", s.config.Inputs.Enhanced, docs.Enhanced},
		{"baseline reasoning", s.config.Inputs.BaselineReasoning, docs.BaselineReasoning},
		{"enhanced reasoning", s.config.Inputs.EnhancedReasoning, docs.EnhancedReasoning},
	}
	for _, in := range inputs {
		if in.doc.IsEmpty() {
			s.logger.Warn("The %s document %s is empty", in.name, in.path)
		}
	}
}

// validateConfig checks if the required configuration is provided.
func (s *Service) validateConfig() error {
	inputs := []struct{ name, path string }{
		{"baseline", s.config.Inputs.Baseline},
		{"enhanced", s.config.Inputs.Enhanced},
		{"baseline reasoning", s.config.Inputs.BaselineReasoning},
		{"enhanced reasoning", s.config.Inputs.EnhancedReasoning},
	}
	for _, in := range inputs {
		if in.path == "" {
			return fmt.Errorf("%s document path is required", in.name)
		}
	}
	if s.config.OutputPath == "" {
		return fmt.Errorf("artifact output path is required")
	}
	return nil
}

// generateSummaryReport logs the overview of a comparison run.
func (s *Service) generateSummaryReport(result RunResult) {
	if result.Architectures > 0 {
		s.logger.Info("Summary: Compared %d paths, %d with differences; %d architectures, %d identical",
			result.Records,
			result.Differences,
			result.Architectures,
			result.Identical,
		)
		return
	}
	s.logger.Info("Summary: Compared %d paths, %d with differences", result.Records, result.Differences)
}

// getOutputFormat converts the string format to report.OutputFormatType.
func (s *Service) getOutputFormat() report.OutputFormatType {
	switch strings.ToUpper(s.config.OutputFormat) {
	case "JSON":
		return report.OutputFormatTypeJSON
	default:
		return report.OutputFormatTypeTABLE
	}
}

func summarize(a *models.Artifact) RunResult {
	return RunResult{
		Records:       a.Summary.TotalRecords,
		Differences:   a.Summary.Differences,
		Architectures: a.Summary.TotalArchitectures,
		Identical:     a.Summary.IdenticalArchitectures,
	}
}
