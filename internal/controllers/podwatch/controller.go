// Package podwatch watches this node's pods and drives the slot reconciler
// off the events that can change slot ownership: a pod update (container
// status/annotations changing) or a pod delete.
package podwatch

import (
	"context"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	corev1 "k8s.io/api/core/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"

	"github.com/romoh/akri/internal/controllers/slotreconciler"
)

// Reconciler reacts to pod events on this node by running one slot
// reconciliation pass. It never returns an error to controller-runtime:
// spec.md treats every internal failure as logged-and-swallowed so that
// retries come only from the next real event, not from requeue back-off.
type Reconciler struct {
	client.Client
	Slots  *slotreconciler.Reconciler
	NodeID string
	Log    logr.Logger
}

// NewReconciler returns a new pod-watch reconciler for nodeID.
func NewReconciler(k8s client.Client, slots *slotreconciler.Reconciler, nodeID string) *Reconciler {
	return &Reconciler{
		Client: k8s,
		Slots:  slots,
		NodeID: nodeID,
		Log:    ctrl.Log.WithName("controllers").WithName("PodWatch"),
	}
}

// +kubebuilder:rbac:groups="",resources=pods,verbs=get;list;watch

// SetupWithManager registers the controller with mgr.
func (r *Reconciler) SetupWithManager(mgr ctrl.Manager, workers int) error {
	return ctrl.NewControllerManagedBy(mgr).
		WithOptions(controller.Options{MaxConcurrentReconciles: workers}).
		For(&corev1.Pod{}).
		WithEventFilter(Predicate{NodeID: r.NodeID, Log: r.Log}).
		Complete(r)
}

// Reconcile runs one slot reconciliation pass for r.NodeID. If req names a
// pod that no longer exists, this was triggered by a delete: the pass still
// runs (the runtime may already have removed the container), and afterwards
// the pod's SlotPodMap correlations are purged since the workload is gone.
func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	pod := &corev1.Pod{}
	err := r.Get(ctx, req.NamespacedName, pod)
	deleted := apierrors.IsNotFound(err)
	if err != nil && !deleted {
		r.Log.Error(err, "failed to fetch pod, reconciling without it", "pod", req.Name)
	}

	if err := r.Slots.Reconcile(ctx, r.NodeID, req.Name); err != nil {
		r.Log.Error(err, "slot reconciliation pass failed", "pod", req.Name)
	}

	if deleted {
		r.Slots.ForgetWorkload(req.Name)
	}
	return ctrl.Result{}, nil
}
