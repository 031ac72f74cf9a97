package loader

import "archcompare/internal/models"

// DocumentLoader is the interface for reading architecture and reasoning documents
//
//go:generate mockery --name=DocumentLoader --output=./mocks
type DocumentLoader interface {
	Load(path string) (*models.Document, error)
}
