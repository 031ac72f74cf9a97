package artifact

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"archcompare/internal/compare"
	"archcompare/internal/models"
	"archcompare/pkg/logging"
)

// csvHeader is the column layout of the tabular architecture export.
var csvHeader = []string{
	"Architecture",
	"Services_Same",
	"Components_Same",
	"Attributes_Same",
	"Configurations_Same",
	"Services_Differences",
	"Components_Differences",
	"Attributes_Differences",
	"Configurations_Differences",
	"Reasoning_Description",
}

// FileStore reads and writes artifacts on the local filesystem.
type FileStore struct {
	logger logging.Logger
}

// NewFileStore creates a FileStore with the given logger
func NewFileStore(logger logging.Logger) *FileStore {
	return &FileStore{logger: logger}
}

// Build assembles an artifact from comparator output. Nil slices are stored
// as empty lists so readers never see null.
func Build(inputs models.Inputs, records []models.ComparisonRecord, rows []models.ArchitectureRow) *models.Artifact {
	if records == nil {
		records = []models.ComparisonRecord{}
	}
	if rows == nil {
		rows = []models.ArchitectureRow{}
	}
	return &models.Artifact{
		Version:       models.ArtifactVersion,
		Inputs:        inputs,
		Summary:       compare.Summarize(records, rows),
		Records:       records,
		Architectures: rows,
	}
}

// Write stores the artifact as indented JSON. The file is replaced atomically
// so a concurrently running viewer never reads a partial artifact.
func (s *FileStore) Write(path string, artifact *models.Artifact) error {
	if artifact == nil {
		return compare.NewError(compare.ErrInvalidInput, "artifact is nil", path, nil)
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	data = append(data, '\n')

	if err := writeAtomic(path, data); err != nil {
		return err
	}
	s.logger.Info("Wrote comparison artifact to %s (%d records, %d architectures)", path, len(artifact.Records), len(artifact.Architectures))
	return nil
}

// Read loads an artifact written by Write.
func (s *FileStore) Read(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, compare.NewMissingDataError(path, err)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var artifact models.Artifact
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&artifact); err != nil {
		return nil, compare.NewParseError(path, err)
	}
	for i := range artifact.Records {
		r := &artifact.Records[i]
		r.BaselineValue = compare.NormalizeNumbers(r.BaselineValue)
		r.EnhancedValue = compare.NormalizeNumbers(r.EnhancedValue)
	}
	if artifact.Records == nil {
		artifact.Records = []models.ComparisonRecord{}
	}
	if artifact.Architectures == nil {
		artifact.Architectures = []models.ArchitectureRow{}
	}
	if artifact.Summary.Levels == nil {
		artifact.Summary = compare.Summarize(artifact.Records, artifact.Architectures)
	}

	s.logger.Debug("Read artifact %s (version %s)", path, artifact.Version)
	return &artifact, nil
}

// WriteCSV exports the architecture table with one row per architecture.
func (s *FileStore) WriteCSV(path string, rows []models.ArchitectureRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.ArchitectureID,
			strconv.Itoa(row.ServicesSame),
			strconv.Itoa(row.ComponentsSame),
			strconv.Itoa(row.AttributesSame),
			strconv.Itoa(row.ConfigurationsSame),
			row.ServicesDifferences,
			row.ComponentsDifferences,
			row.AttributesDifferences,
			row.ConfigurationsDifferences,
			row.ReasoningDescription,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", row.ArchitectureID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Info("Exported %d architectures to %s", len(rows), path)
	return f.Close()
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return nil
}
