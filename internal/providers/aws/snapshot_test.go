package aws

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"archcompare/internal/models"
	"archcompare/internal/providers/aws/mocks"
)

func TestCaptureSnapshot(t *testing.T) {
	svc := mocks.NewInstanceServiceAPI(t)
	svc.On("GetInstancesDetails", mock.Anything, []string{"i-1"}).
		Return([]models.InstanceSnapshot{{InstanceID: "i-1", InstanceType: "t3.micro"}}, nil)

	snapshot, err := CaptureSnapshot(context.Background(), svc, []string{"i-1"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, snapshot))
	assert.JSONEq(t, `{"ec2_instances": [{"instance_id": "i-1", "instance_type": "t3.micro"}]}`, buf.String())
}

func TestCaptureSnapshot_Error(t *testing.T) {
	svc := mocks.NewInstanceServiceAPI(t)
	svc.On("GetInstancesDetails", mock.Anything, mock.Anything).Return(nil, errors.New("denied"))

	snapshot, err := CaptureSnapshot(context.Background(), svc, []string{"i-1"})

	assert.Nil(t, snapshot)
	assert.EqualError(t, err, "denied")
}

func TestWriteSnapshot_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, &models.Snapshot{EC2Instances: []models.InstanceSnapshot{}}))
	assert.JSONEq(t, `{"ec2_instances": []}`, buf.String())
}
