package report

import "archcompare/internal/models"

// IPrinter is the interface for generating reports
//
//go:generate mockery --name=IPrinter --output=./mocks
type IPrinter interface {
	PrintReport(artifact *models.Artifact, format OutputFormatType) error
}
