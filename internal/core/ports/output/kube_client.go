package ports

import "context"

type ServingStatus struct {
	Name          string `json:"name"`
	Namespace     string `json:"namespace"`
	ReadyReplicas int32  `json:"ready_replicas"`
	TotalReplicas int32  `json:"total_replicas"`
	Available     bool   `json:"available"`
}

// KubeClient probes the serving Deployment that fronts a model in the
// cluster. Optional: the zero-value disabled client reports unavailability.
type KubeClient interface {
	IsAvailable() bool
	GetServingStatus(ctx context.Context, name string) (*ServingStatus, error)
}
