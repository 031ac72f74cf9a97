package models

// InstanceSnapshot is the captured configuration of one running EC2 instance.
type InstanceSnapshot struct {
	InstanceID       string            `json:"instance_id"`
	InstanceType     string            `json:"instance_type,omitempty"`
	AMI              string            `json:"ami,omitempty"`
	State            string            `json:"state,omitempty"`
	AvailabilityZone string            `json:"availability_zone,omitempty"`
	VpcID            string            `json:"vpc_id,omitempty"`
	SubnetID         string            `json:"subnet_id,omitempty"`
	SecurityGroups   []string          `json:"security_groups,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
}

// Snapshot is the document written by the snapshot command. Its shape is
// a regular architecture description so it can be fed to the comparator.
type Snapshot struct {
	EC2Instances []InstanceSnapshot `json:"ec2_instances"`
}
