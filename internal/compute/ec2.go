package compute

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
)

// errCodeDryRun is returned by EC2 when a dry-run request would have succeeded.
const errCodeDryRun = "DryRunOperation"

// ec2API is the subset of *ec2.Client used by EC2Stopper.
type ec2API interface {
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

// EC2Stopper implements InstanceStopper using AWS EC2.
type EC2Stopper struct {
	client ec2API

	// DryRun asks EC2 to check permissions without stopping anything.
	DryRun bool
}

// NewEC2Stopper creates an EC2 stopper from a loaded AWS config.
// Retries and timeouts are the SDK defaults.
func NewEC2Stopper(cfg aws.Config) *EC2Stopper {
	return &EC2Stopper{client: ec2.NewFromConfig(cfg)}
}

func (s *EC2Stopper) StopInstance(ctx context.Context, instanceID string) error {
	input := &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
	}
	if s.DryRun {
		input.DryRun = aws.Bool(true)
	}

	_, err := s.client.StopInstances(ctx, input)
	if err != nil {
		if s.DryRun && isDryRunSuccess(err) {
			return nil
		}
		return fmt.Errorf("ec2: StopInstances failed for %s: %w", instanceID, err)
	}
	return nil
}

func isDryRunSuccess(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == errCodeDryRun
}
