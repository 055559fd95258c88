// Package kube provides the reconciler's narrow view of the cluster API:
// listing workloads scheduled to this node, listing device instances, and
// patching an instance's slot ownership back.
package kube

import (
	"context"

	corev1 "k8s.io/api/core/v1"

	akriv1 "github.com/romoh/akri/api/v1"
)

// Interface is the capability set the reconciler needs from the cluster
// API. Tests inject a mock; production uses Client, backed by a
// controller-runtime client.Client.
//go:generate mockgen -destination=mocks/mock_interface.go -package=mocks . Interface
type Interface interface {
	// FindPodsOnNode lists workloads whose spec.nodeName equals nodeName.
	FindPodsOnNode(ctx context.Context, nodeName string) ([]corev1.Pod, error)

	// GetInstances lists all device-instance records.
	GetInstances(ctx context.Context) ([]akriv1.Instance, error)

	// UpdateInstance writes back instance's corrected spec.
	UpdateInstance(ctx context.Context, instance akriv1.Instance, name, namespace string) error
}
