package kube

import (
	"context"

	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	akriv1 "github.com/romoh/akri/api/v1"
)

// Client is the production Interface implementation, backed by a
// controller-runtime client.Client.
type Client struct {
	client.Client
}

// NewClient returns a Client wrapping c.
func NewClient(c client.Client) *Client {
	return &Client{Client: c}
}

// FindPodsOnNode lists pods whose spec.nodeName equals nodeName, mirroring
// the field selector `spec.nodeName=<node>` from the original agent.
func (c *Client) FindPodsOnNode(ctx context.Context, nodeName string) ([]corev1.Pod, error) {
	podList := &corev1.PodList{}
	if err := c.List(ctx, podList, client.MatchingFields{"spec.nodeName": nodeName}); err != nil {
		return nil, errors.Wrap(err, "failed to list pods on node")
	}
	return podList.Items, nil
}

// GetInstances lists all device-instance records.
func (c *Client) GetInstances(ctx context.Context) ([]akriv1.Instance, error) {
	instanceList := &akriv1.InstanceList{}
	if err := c.List(ctx, instanceList); err != nil {
		return nil, errors.Wrap(err, "failed to list instances")
	}
	return instanceList.Items, nil
}

// UpdateInstance writes back instance's corrected spec. The live object is
// fetched immediately before the patch so the update carries its current
// ResourceVersion; no lock is held on the instance between fetch and
// update, so a concurrent cluster-side write can still race it, per the
// "last-writer-wins" rule in spec.md §4.3.
func (c *Client) UpdateInstance(ctx context.Context, instance akriv1.Instance, name, namespace string) error {
	current := &akriv1.Instance{}
	key := types.NamespacedName{Name: name, Namespace: namespace}
	if err := c.Get(ctx, key, current); err != nil {
		return errors.Wrap(err, "failed to fetch instance before update")
	}
	current.Spec = instance.Spec
	if err := c.Update(ctx, current); err != nil {
		return errors.Wrap(err, "failed to update instance")
	}
	return nil
}
