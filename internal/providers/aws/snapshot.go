package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"archcompare/internal/models"
)

// CaptureSnapshot describes instanceIDs through svc and wraps the result in
// the document shape the comparator reads.
func CaptureSnapshot(ctx context.Context, svc InstanceServiceAPI, instanceIDs []string) (*models.Snapshot, error) {
	instances, err := svc.GetInstancesDetails(ctx, instanceIDs)
	if err != nil {
		return nil, err
	}
	if instances == nil {
		instances = []models.InstanceSnapshot{}
	}
	return &models.Snapshot{EC2Instances: instances}, nil
}

// WriteSnapshot encodes snapshot as indented JSON.
func WriteSnapshot(w io.Writer, snapshot *models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
