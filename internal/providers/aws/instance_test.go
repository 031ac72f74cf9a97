package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"archcompare/internal/models"
	"archcompare/internal/providers/aws/mocks"
)

func idsEqual(want ...string) func(*ec2.DescribeInstancesInput) bool {
	return func(input *ec2.DescribeInstancesInput) bool {
		if len(input.InstanceIds) != len(want) {
			return false
		}
		for i := range want {
			if input.InstanceIds[i] != want[i] {
				return false
			}
		}
		return true
	}
}

func reservationOf(instances ...types.Instance) *ec2.DescribeInstancesOutput {
	return &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{{Instances: instances}},
	}
}

// TestGetInstancesDetails_Success tests successful retrieval of multiple EC2 instances
func TestGetInstancesDetails_Success(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)

	instanceIDs := []string{"i-1234567890abcdef0", "i-0987654321fedcba0"}

	// returned out of order to check results follow the requested order
	expectedResponse := reservationOf(
		types.Instance{
			InstanceId:   aws.String(instanceIDs[1]),
			InstanceType: types.InstanceTypeT2Medium,
			ImageId:      aws.String("ami-67890"),
		},
		types.Instance{
			InstanceId:   aws.String(instanceIDs[0]),
			InstanceType: types.InstanceTypeT2Micro,
			ImageId:      aws.String("ami-12345"),
			State:        &types.InstanceState{Name: types.InstanceStateNameRunning},
			Placement:    &types.Placement{AvailabilityZone: aws.String("eu-west-1a")},
			VpcId:        aws.String("vpc-1"),
			SubnetId:     aws.String("subnet-12345"),
			Tags: []types.Tag{
				{Key: aws.String("Name"), Value: aws.String("test-instance")},
				{Key: aws.String("Environment"), Value: aws.String("testing")},
			},
			SecurityGroups: []types.GroupIdentifier{
				{GroupId: aws.String("sg-b")},
				{GroupId: aws.String("sg-a")},
			},
		},
	)

	mockClient.On("DescribeInstances", mock.Anything, mock.MatchedBy(idsEqual(instanceIDs...))).
		Return(expectedResponse, nil)

	service := NewInstanceServiceWithClient(mockClient)
	results, err := service.GetInstancesDetails(context.Background(), instanceIDs)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, models.InstanceSnapshot{
		InstanceID:       instanceIDs[0],
		InstanceType:     "t2.micro",
		AMI:              "ami-12345",
		State:            "running",
		AvailabilityZone: "eu-west-1a",
		VpcID:            "vpc-1",
		SubnetID:         "subnet-12345",
		SecurityGroups:   []string{"sg-a", "sg-b"},
		Tags:             map[string]string{"Name": "test-instance", "Environment": "testing"},
	}, results[0])
	assert.Equal(t, instanceIDs[1], results[1].InstanceID)
	assert.Equal(t, string(types.InstanceTypeT2Medium), results[1].InstanceType)
	assert.Nil(t, results[1].Tags)
}

func TestGetInstancesDetails_Batches(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)

	for _, id := range []string{"i-1", "i-2", "i-3"} {
		mockClient.On("DescribeInstances", mock.Anything, mock.MatchedBy(idsEqual(id))).
			Return(reservationOf(types.Instance{InstanceId: aws.String(id)}), nil).Once()
	}

	service := NewInstanceServiceWithClient(mockClient).WithLimits(1, 2)
	results, err := service.GetInstancesDetails(context.Background(), []string{"i-1", "i-2", "i-2", " i-3 ", ""})

	require.NoError(t, err)
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.InstanceID
	}
	assert.Equal(t, []string{"i-1", "i-2", "i-3"}, ids)
}

func TestGetInstancesDetails_FollowsNextToken(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)

	first := reservationOf(types.Instance{InstanceId: aws.String("i-1")})
	first.NextToken = aws.String("page-2")

	mockClient.On("DescribeInstances", mock.Anything, mock.MatchedBy(func(input *ec2.DescribeInstancesInput) bool {
		return input.NextToken == nil
	})).Return(first, nil).Once()
	mockClient.On("DescribeInstances", mock.Anything, mock.MatchedBy(func(input *ec2.DescribeInstancesInput) bool {
		return aws.ToString(input.NextToken) == "page-2"
	})).Return(reservationOf(types.Instance{InstanceId: aws.String("i-2")}), nil).Once()

	results, err := NewInstanceServiceWithClient(mockClient).GetInstancesDetails(context.Background(), []string{"i-1", "i-2"})

	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestGetInstancesDetails_NoIDs(t *testing.T) {
	service := NewInstanceServiceWithClient(mocks.NewEC2ClientAPI(t))

	results, err := service.GetInstancesDetails(context.Background(), []string{" ", ""})

	assert.Nil(t, results)
	assert.True(t, IsErrorCategory(err, ErrInvalidInput))
}

func TestGetInstancesDetails_MissingFromResponse(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)
	mockClient.On("DescribeInstances", mock.Anything, mock.Anything).
		Return(&ec2.DescribeInstancesOutput{Reservations: []types.Reservation{}}, nil)

	results, err := NewInstanceServiceWithClient(mockClient).GetInstancesDetails(context.Background(), []string{"i-gone"})

	assert.Nil(t, results)
	var awsErr *Error
	require.True(t, errors.As(err, &awsErr))
	assert.Equal(t, ErrResourceNotFound, awsErr.Category)
	assert.Equal(t, "i-gone", awsErr.ResourceID)
	assert.Contains(t, err.Error(), "EC2 instance not found")
}

func TestGetInstanceDetails_InstanceNotFound(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)

	// nonexistent instance ID
	instanceID := "i-nonexistent"

	expectedError := errors.New("InvalidInstanceID.NotFound")

	mockClient.On("DescribeInstances",
		mock.Anything,
		mock.MatchedBy(idsEqual(instanceID)),
	).Return(nil, expectedError)

	service := NewInstanceServiceWithClient(mockClient)
	results, err := service.GetInstancesDetails(context.Background(), []string{instanceID})

	// Should return an error
	assert.Error(t, err)
	assert.Nil(t, results)

	// Verify the error is an AWS error
	var awsErr *Error
	assert.True(t, errors.As(err, &awsErr))
	assert.Equal(t, ErrResourceNotFound, awsErr.Category)
	assert.Equal(t, EC2ResourceType, awsErr.ResourceType)
	assert.Equal(t, instanceID, awsErr.ResourceID)
}

func TestGetInstanceDetails_AWSError(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)

	instanceID := "i-1234567890abcdef0"

	expectedError := errors.New("AWS API error")
	mockClient.On("DescribeInstances",
		mock.Anything,
		mock.MatchedBy(idsEqual(instanceID)),
	).Return(nil, expectedError)

	service := NewInstanceServiceWithClient(mockClient)
	details, err := service.GetInstancesDetails(context.Background(), []string{instanceID})

	// Should return an error
	assert.Error(t, err)
	assert.Nil(t, details)
	assert.ErrorIs(t, err, expectedError)

	// Verify the error is an AWS error
	var awsErr *Error
	assert.True(t, errors.As(err, &awsErr))
	assert.Equal(t, ErrInternalError, awsErr.Category)
	assert.Equal(t, EC2ResourceType, awsErr.ResourceType)
	assert.Equal(t, instanceID, awsErr.ResourceID)
}
