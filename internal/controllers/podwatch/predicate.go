package podwatch

import (
	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/event"

	"github.com/romoh/akri/internal/pkg/predicate"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Predicate filters pod events down to the ones that can possibly affect
// this node's slot accounting: an update or delete of a pod scheduled to
// NodeID. Creates are handled by the device-plugin allocation ingress
// (out of scope here) and are always ignored.
type Predicate struct {
	predicate.IgnoreFuncs
	NodeID string
	Log    logr.Logger
}

// Update reports whether e.ObjectNew is a pod scheduled to this node.
func (p Predicate) Update(e event.UpdateEvent) bool {
	return p.onThisNode(e.ObjectNew)
}

// Delete reports whether e.Object is a pod scheduled to this node.
func (p Predicate) Delete(e event.DeleteEvent) bool {
	return p.onThisNode(e.Object)
}

func (p Predicate) onThisNode(obj client.Object) bool {
	pod, ok := obj.(*corev1.Pod)
	if !ok {
		return false
	}
	return pod.Spec.NodeName != "" && pod.Spec.NodeName == p.NodeID
}
