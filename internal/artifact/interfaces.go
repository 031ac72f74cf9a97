package artifact

import "archcompare/internal/models"

// IStore is the interface for persisting comparison artifacts
//
//go:generate mockery --name=IStore --output=./mocks
type IStore interface {
	Write(path string, artifact *models.Artifact) error
	Read(path string) (*models.Artifact, error)
	WriteCSV(path string, rows []models.ArchitectureRow) error
}
