package slotreconciler

import (
	"context"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/label"

	akriv1 "github.com/romoh/akri/api/v1"
	"github.com/romoh/akri/internal/pkg/metrics"
	"github.com/romoh/akri/internal/pkg/slots"
)

// diff is the per-instance output of computeDiff: the slots that must be
// credited to this node and the slots that must be freed.
type diff struct {
	missingThisNode map[akriv1.SlotID]struct{}
	toClean         map[akriv1.SlotID]struct{}
}

func (d diff) empty() bool {
	return len(d.missingThisNode) == 0 && len(d.toClean) == 0
}

// computeDiff implements spec.md §4.3 step 5. The two predicates are
// mutually exclusive by construction (a slot's current owner is either
// nodeID or it isn't), so slots_missing_this_node and slots_to_clean are
// always disjoint.
func computeDiff(usage map[akriv1.SlotID]akriv1.NodeID, nodeID akriv1.NodeID, nodeSlotUsage slots.Set) diff {
	d := diff{
		missingThisNode: map[akriv1.SlotID]struct{}{},
		toClean:         map[akriv1.SlotID]struct{}{},
	}
	for slot, owner := range usage {
		switch {
		case owner != nodeID && nodeSlotUsage.Contains(slot):
			// A live container on this node uses slot, yet the cluster
			// credits it elsewhere (or to nobody): this node must claim it.
			d.missingThisNode[slot] = struct{}{}
		case owner == nodeID && !nodeSlotUsage.Contains(slot):
			// The cluster credits this node for slot, but no live
			// container holds it: the claim must be freed.
			d.toClean[slot] = struct{}{}
		}
	}
	return d
}

// applyDiff implements spec.md §4.3 step 7: slots in missingThisNode are
// set to nodeID, slots in toClean are cleared, everything else is
// unchanged.
func applyDiff(usage map[akriv1.SlotID]akriv1.NodeID, nodeID akriv1.NodeID, d diff) map[akriv1.SlotID]akriv1.NodeID {
	out := make(map[akriv1.SlotID]akriv1.NodeID, len(usage))
	for slot, owner := range usage {
		switch {
		case contains(d.missingThisNode, slot):
			out[slot] = nodeID
		case contains(d.toClean, slot):
			out[slot] = ""
		default:
			out[slot] = owner
		}
	}
	return out
}

func contains(set map[akriv1.SlotID]struct{}, slot akriv1.SlotID) bool {
	_, ok := set[slot]
	return ok
}

// reconcileInstance computes and, if needed, writes back the corrected
// device_usage for one instance. It preserves ConfigurationName, Metadata,
// RBAC, Shared and Nodes byte-for-byte, substituting only DeviceUsage.
func (r *Reconciler) reconcileInstance(
	ctx context.Context,
	instance akriv1.Instance,
	nodeID string,
	podName string,
	nodeSlotUsage slots.Set,
) error {
	log := r.Log.WithValues("instance", instance.Name, "namespace", instance.Namespace)

	d := computeDiff(instance.Spec.DeviceUsage, akriv1.NodeID(nodeID), nodeSlotUsage)
	r.annotateSlotPodMap(d, podName, log)

	if d.empty() {
		return nil
	}

	tr := otel.Tracer("slot-reconciler")
	ctx, span := tr.Start(ctx, "reconcile instance")
	span.SetAttributes(label.String("instance", instance.Name), label.String("namespace", instance.Namespace))
	defer span.End()

	modified := instance
	modified.Spec.DeviceUsage = applyDiff(instance.Spec.DeviceUsage, akriv1.NodeID(nodeID), d)

	log.Info("updating instance device usage",
		"slots_missing_this_node", len(d.missingThisNode),
		"slots_to_clean", len(d.toClean))

	if err := r.Kube.UpdateInstance(ctx, modified, instance.Name, instance.Namespace); err != nil {
		// Mutation rejections are logged here and the pass continues to
		// the next instance: the next pass retries this one.
		metrics.ReconcileErrors.Increment(metrics.KindMutationRejected)
		span.RecordError(err)
		span.SetStatus(codes.Error, "update instance failed")
		log.Error(err, "update instance failed")
		return err
	}
	span.SetStatus(codes.Ok, "instance reconciled")
	return nil
}

// annotateSlotPodMap records podName as the workload of each newly claimed
// slot and logs the last known workload of each slot being cleaned. It
// removes no entries. Observability only, per the doc on
// Reconciler.SlotPodMap.
func (r *Reconciler) annotateSlotPodMap(d diff, podName string, log logr.Logger) {
	if podName != "" {
		for slot := range d.missingThisNode {
			r.SlotPodMap.AddOrUpdate(string(slot), podName)
		}
	}
	for slot := range d.toClean {
		if owner, ok := r.SlotPodMap.Workload(string(slot)); ok && owner != "" {
			log.Info("cleaning slot with a known former owner", "slot", slot, "workload", owner)
		}
	}
}
