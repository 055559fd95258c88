// Package slotreconciler implements the core reconciliation algorithm: it
// cross-references the live container set on this node against the
// orchestrator's instance records and corrects drift in device_usage.
package slotreconciler

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/label"
	corev1 "k8s.io/api/core/v1"

	akriv1 "github.com/romoh/akri/api/v1"
	"github.com/romoh/akri/internal/pkg/crictl"
	"github.com/romoh/akri/internal/pkg/kube"
	"github.com/romoh/akri/internal/pkg/metrics"
	"github.com/romoh/akri/internal/pkg/reconcileerr"
	"github.com/romoh/akri/internal/pkg/slotmap"
)

// Reconciler makes sure every Instance's device_usage accurately reflects
// actual slot usage on this node.
type Reconciler struct {
	Kube      kube.Interface
	SlotQuery crictl.Query
	Log       logr.Logger

	// SlotPodMap correlates slots with the workload believed to be using
	// them. It is consulted for logging only: it never gates or changes the
	// device_usage corrections computed below, so the Convergence and
	// Idempotence invariants hold regardless of its contents. See
	// DESIGN.md for why a decision-affecting use was rejected.
	SlotPodMap *slotmap.Map
}

// New returns a Reconciler backed by k and q, with its own empty
// SlotPodMap.
func New(k kube.Interface, q crictl.Query, log logr.Logger) *Reconciler {
	return &Reconciler{
		Kube:       k,
		SlotQuery:  q,
		Log:        log,
		SlotPodMap: slotmap.New(),
	}
}

// AddOrUpdateSlot records a newly allocated slot with an unknown workload
// name. Called by the device-plugin allocation ingress (out of scope
// here); idempotent.
func (r *Reconciler) AddOrUpdateSlot(slot akriv1.SlotID) {
	r.SlotPodMap.AddOrUpdate(string(slot), "")
}

// RemoveSlot removes slot from the SlotPodMap. No-op if absent.
func (r *Reconciler) RemoveSlot(slot akriv1.SlotID) {
	r.SlotPodMap.Remove(string(slot))
}

// ForgetWorkload purges every SlotPodMap entry correlated with workload.
// Called by podwatch when a pod is confirmed deleted.
func (r *Reconciler) ForgetWorkload(workload string) {
	r.SlotPodMap.RemoveByWorkload(workload)
}

// Reconcile performs one reconciliation pass for nodeID. podName, if
// non-empty, names the workload whose event triggered this pass and is
// used only to enrich SlotPodMap correlations and logs.
//
// Reconcile never fails visibly to its caller in the sense of spec.md §7:
// a failure to list pods, probe the runtime or list instances is logged,
// counted, and ends the pass early with an error; a rejected instance
// update is logged and counted inside reconcileInstance and the pass moves
// on to the next instance, still returning nil. The returned error exists
// purely so tests can observe an aborted pass; podwatch does not treat it
// as a controller-runtime requeue trigger.
func (r *Reconciler) Reconcile(ctx context.Context, nodeID string, podName string) error {
	tr := otel.Tracer("slot-reconciler")
	ctx, span := tr.Start(ctx, "reconcile")
	span.SetAttributes(label.String("node", nodeID))
	defer span.End()

	start := time.Now()
	outcome := "ok"
	defer func() {
		metrics.ReconcileDuration.Observe(outcome, time.Since(start))
	}()

	fail := func(kind reconcileerr.Kind, err error, msg string) error {
		outcome = kind.String()
		metrics.ReconcileErrors.Increment(toMetricsKind(kind))
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		r.Log.Error(err, msg)
		return reconcileerr.New(kind, err)
	}

	pods, err := r.Kube.FindPodsOnNode(ctx, nodeID)
	if err != nil {
		return fail(reconcileerr.Transient, err, "failed to find pods on this node")
	}

	if anyUnready(pods) {
		r.Log.Info("pods with unready containers exist on this node, skipping reconciliation")
		return nil
	}

	nodeSlotUsage, err := r.SlotQuery.GetNodeSlots(ctx)
	if err != nil {
		return fail(reconcileerr.Transient, err, "failed to query node slot usage")
	}
	span.SetAttributes(label.Int("node_slots", len(nodeSlotUsage)))

	instances, err := r.Kube.GetInstances(ctx)
	if err != nil {
		return fail(reconcileerr.Transient, err, "failed to list instances")
	}

	for _, instance := range instances {
		if err := r.reconcileInstance(ctx, instance, nodeID, podName, nodeSlotUsage); err != nil {
			// Mutation rejections are logged and counted inside
			// reconcileInstance; this pass continues to the next instance
			// and the next pass will retry.
			outcome = reconcileerr.MutationRejected.String()
		}
	}
	return nil
}

// anyUnready reports whether any pod has a ContainersReady condition that
// is not "True". During container bring-up the runtime may not yet expose
// the slot annotation, so cleaning now would produce a false deallocation.
func anyUnready(pods []corev1.Pod) bool {
	for _, pod := range pods {
		for _, cond := range pod.Status.Conditions {
			if cond.Type == corev1.ContainersReady && cond.Status != corev1.ConditionTrue {
				return true
			}
		}
	}
	return false
}

func toMetricsKind(k reconcileerr.Kind) metrics.Kind {
	if k == reconcileerr.MutationRejected {
		return metrics.KindMutationRejected
	}
	return metrics.KindTransient
}
