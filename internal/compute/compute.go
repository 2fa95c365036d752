package compute

import "context"

// InstanceStopper asks the compute provider to stop an instance.
// Implementations return once the provider has accepted (or rejected) the
// request; they do not wait for the instance to reach the stopped state.
type InstanceStopper interface {
	StopInstance(ctx context.Context, instanceID string) error
}
