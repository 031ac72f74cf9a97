package aws

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"golang.org/x/sync/errgroup"

	"archcompare/internal/models"
)

const (
	// DefaultBatchSize is the number of IDs sent per DescribeInstances call.
	DefaultBatchSize = 100
	// DefaultConcurrency bounds the number of in-flight DescribeInstances calls.
	DefaultConcurrency = 4
)

// InstanceService handles interactions with AWS EC2 instances
type InstanceService struct {
	client      EC2ClientAPI
	batchSize   int
	concurrency int
}

// NewInstanceServiceWithDefaultConfig creates a new InstanceService with the default AWS SDK configuration
func NewInstanceServiceWithDefaultConfig(ctx context.Context, region string) (*InstanceService, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, NewAWSError(ErrConfigurationError, EC2ResourceType, "", "unable to load AWS SDK config", err)
	}

	return NewInstanceServiceWithClient(ec2.NewFromConfig(cfg)), nil
}

// NewInstanceServiceWithClient creates a new InstanceService with a provided client
func NewInstanceServiceWithClient(client EC2ClientAPI) *InstanceService {
	return &InstanceService{
		client:      client,
		batchSize:   DefaultBatchSize,
		concurrency: DefaultConcurrency,
	}
}

// WithLimits overrides batch size and concurrency. Non-positive values keep the defaults.
func (s *InstanceService) WithLimits(batchSize, concurrency int) *InstanceService {
	if batchSize > 0 {
		s.batchSize = batchSize
	}
	if concurrency > 0 {
		s.concurrency = concurrency
	}
	return s
}

// GetInstancesDetails describes instanceIDs and returns one snapshot per ID,
// in the order the IDs were given. Duplicate IDs are described once.
func (s *InstanceService) GetInstancesDetails(ctx context.Context, instanceIDs []string) ([]models.InstanceSnapshot, error) {
	ids := dedupe(instanceIDs)
	if len(ids) == 0 {
		return nil, NewAWSError(ErrInvalidInput, EC2ResourceType, "", "no instance IDs given", nil)
	}

	batches := slices.Collect(slices.Chunk(ids, s.batchSize))
	found := make([]map[string]models.InstanceSnapshot, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, batch := range batches {
		g.Go(func() error {
			snapshots, err := s.describe(gctx, batch)
			if err != nil {
				return err
			}
			found[i] = snapshots
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]models.InstanceSnapshot, 0, len(ids))
	for i, batch := range batches {
		for _, id := range batch {
			snapshot, ok := found[i][id]
			if !ok {
				return nil, NewAWSError(ErrResourceNotFound, EC2ResourceType, id, "EC2 instance not found", nil)
			}
			results = append(results, snapshot)
		}
	}
	return results, nil
}

func (s *InstanceService) describe(ctx context.Context, ids []string) (map[string]models.InstanceSnapshot, error) {
	resourceID := strings.Join(ids, ",")
	out := make(map[string]models.InstanceSnapshot, len(ids))

	input := &ec2.DescribeInstancesInput{InstanceIds: ids}
	for {
		resp, err := s.client.DescribeInstances(ctx, input)
		if err != nil {
			return nil, ClassifyAWSError(fmt.Errorf("failed to describe EC2 instances: %w", err), EC2ResourceType, resourceID)
		}
		for _, reservation := range resp.Reservations {
			for _, instance := range reservation.Instances {
				snapshot := toSnapshot(instance)
				out[snapshot.InstanceID] = snapshot
			}
		}
		if aws.ToString(resp.NextToken) == "" {
			break
		}
		input = &ec2.DescribeInstancesInput{InstanceIds: ids, NextToken: resp.NextToken}
	}
	return out, nil
}

func toSnapshot(instance types.Instance) models.InstanceSnapshot {
	snapshot := models.InstanceSnapshot{
		InstanceID:   aws.ToString(instance.InstanceId),
		InstanceType: string(instance.InstanceType),
		AMI:          aws.ToString(instance.ImageId),
		VpcID:        aws.ToString(instance.VpcId),
		SubnetID:     aws.ToString(instance.SubnetId),
		Tags:         convertTags(instance.Tags),
	}
	if instance.State != nil {
		snapshot.State = string(instance.State.Name)
	}
	if instance.Placement != nil {
		snapshot.AvailabilityZone = aws.ToString(instance.Placement.AvailabilityZone)
	}

	if len(instance.SecurityGroups) > 0 {
		snapshot.SecurityGroups = make([]string, len(instance.SecurityGroups))
		for i, sg := range instance.SecurityGroups {
			snapshot.SecurityGroups[i] = aws.ToString(sg.GroupId)
		}
		slices.Sort(snapshot.SecurityGroups)
	}
	return snapshot
}

// convertTags converts AWS SDK tags to a map
func convertTags(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}

	result := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key != nil && tag.Value != nil {
			result[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
	}
	return result
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
