package slotreconciler

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	akriv1 "github.com/romoh/akri/api/v1"
	crictlmocks "github.com/romoh/akri/internal/pkg/crictl/mocks"
	kubemocks "github.com/romoh/akri/internal/pkg/kube/mocks"
	"github.com/romoh/akri/internal/pkg/slots"
)

const nodeID = "node-a"

// baseline mirrors the fixture used across spec.md's S1-S6: slot 1 and slot
// 3 are credited to node-a, slot 5 is free.
func baselineInstance() akriv1.Instance {
	return akriv1.Instance{
		ObjectMeta: metav1.ObjectMeta{Name: "config-a", Namespace: "default"},
		Spec: akriv1.InstanceSpec{
			ConfigurationName: "config-a",
			DeviceUsage: map[akriv1.SlotID]akriv1.NodeID{
				"config-a-1": "node-a",
				"config-a-3": "node-a",
				"config-a-5": "",
			},
		},
	}
}

func readyPod() corev1.Pod {
	return corev1.Pod{
		Status: corev1.PodStatus{
			Conditions: []corev1.PodCondition{
				{Type: corev1.ContainersReady, Status: corev1.ConditionTrue},
			},
		},
	}
}

func unreadyPod() corev1.Pod {
	return corev1.Pod{
		Status: corev1.PodStatus{
			Conditions: []corev1.PodCondition{
				{Type: corev1.ContainersReady, Status: corev1.ConditionFalse},
			},
		},
	}
}

func newMocks(t *testing.T) (*kubemocks.MockInterface, *crictlmocks.MockQuery) {
	ctrl := gomock.NewController(t)
	return kubemocks.NewMockInterface(ctrl), crictlmocks.NewMockQuery(ctrl)
}

// TestReconcile_S1_emptyProbeCleansBothCreditedSlots is the corrected S1: an
// empty probe against node-a's current credits (slots 1 and 3) means
// neither is actually in use, so both must be cleaned.
func TestReconcile_S1_emptyProbeCleansBothCreditedSlots(t *testing.T) {
	mockKube, mockQuery := newMocks(t)
	mockKube.EXPECT().FindPodsOnNode(gomock.Any(), nodeID).Return([]corev1.Pod{readyPod()}, nil)
	mockQuery.EXPECT().GetNodeSlots(gomock.Any()).Return(slots.Set{}, nil)
	mockKube.EXPECT().GetInstances(gomock.Any()).Return([]akriv1.Instance{baselineInstance()}, nil)

	var updated akriv1.Instance
	mockKube.EXPECT().UpdateInstance(gomock.Any(), gomock.Any(), "config-a", "default").
		DoAndReturn(func(_ context.Context, i akriv1.Instance, _, _ string) error {
			updated = i
			return nil
		})

	r := New(mockKube, mockQuery, logr.Discard())
	require.NoError(t, r.Reconcile(context.Background(), nodeID, ""))

	require.Equal(t, akriv1.NodeID(""), updated.Spec.DeviceUsage["config-a-1"])
	require.Equal(t, akriv1.NodeID(""), updated.Spec.DeviceUsage["config-a-3"])
	require.Equal(t, akriv1.NodeID(""), updated.Spec.DeviceUsage["config-a-5"])
}

// TestReconcile_S1b_probeMatchesCurrentCreditsIsANoOp is the true no-op half
// of S1: the probe exactly matches what node-a is already credited for.
func TestReconcile_S1b_probeMatchesCurrentCreditsIsANoOp(t *testing.T) {
	mockKube, mockQuery := newMocks(t)
	mockKube.EXPECT().FindPodsOnNode(gomock.Any(), nodeID).Return([]corev1.Pod{readyPod()}, nil)
	mockQuery.EXPECT().GetNodeSlots(gomock.Any()).Return(slots.Set{"config-a-1": {}, "config-a-3": {}}, nil)
	mockKube.EXPECT().GetInstances(gomock.Any()).Return([]akriv1.Instance{baselineInstance()}, nil)
	mockKube.EXPECT().UpdateInstance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	r := New(mockKube, mockQuery, logr.Discard())
	require.NoError(t, r.Reconcile(context.Background(), nodeID, ""))
}

// TestReconcile_S2_addSlot5 credits the newly observed slot 5 to node-a and
// clears slot 1, which the probe no longer reports.
func TestReconcile_S2_addSlot5(t *testing.T) {
	mockKube, mockQuery := newMocks(t)
	mockKube.EXPECT().FindPodsOnNode(gomock.Any(), nodeID).Return([]corev1.Pod{readyPod()}, nil)
	mockQuery.EXPECT().GetNodeSlots(gomock.Any()).Return(slots.Set{"config-a-3": {}, "config-a-5": {}}, nil)
	mockKube.EXPECT().GetInstances(gomock.Any()).Return([]akriv1.Instance{baselineInstance()}, nil)

	var updated akriv1.Instance
	mockKube.EXPECT().UpdateInstance(gomock.Any(), gomock.Any(), "config-a", "default").
		DoAndReturn(func(_ context.Context, i akriv1.Instance, _, _ string) error {
			updated = i
			return nil
		})

	r := New(mockKube, mockQuery, logr.Discard())
	require.NoError(t, r.Reconcile(context.Background(), nodeID, ""))

	require.Equal(t, akriv1.NodeID(""), updated.Spec.DeviceUsage["config-a-1"])
	require.Equal(t, akriv1.NodeID(nodeID), updated.Spec.DeviceUsage["config-a-5"])
	require.Equal(t, akriv1.NodeID(nodeID), updated.Spec.DeviceUsage["config-a-3"])
}

// TestReconcile_SlotPodMap_recordsNewlyClaimedSlot exercises the SlotPodMap
// write path resolving Open Question 1: a slot that lands in
// missingThisNode during a pod-triggered pass is correlated with the
// triggering workload's name.
func TestReconcile_SlotPodMap_recordsNewlyClaimedSlot(t *testing.T) {
	mockKube, mockQuery := newMocks(t)
	mockKube.EXPECT().FindPodsOnNode(gomock.Any(), nodeID).Return([]corev1.Pod{readyPod()}, nil)
	mockQuery.EXPECT().GetNodeSlots(gomock.Any()).Return(slots.Set{"config-a-3": {}, "config-a-5": {}}, nil)
	mockKube.EXPECT().GetInstances(gomock.Any()).Return([]akriv1.Instance{baselineInstance()}, nil)
	mockKube.EXPECT().UpdateInstance(gomock.Any(), gomock.Any(), "config-a", "default").Return(nil)

	r := New(mockKube, mockQuery, logr.Discard())
	require.NoError(t, r.Reconcile(context.Background(), nodeID, "web-0"))

	workload, ok := r.SlotPodMap.Workload("config-a-5")
	require.True(t, ok)
	require.Equal(t, "web-0", workload)
}

// TestReconcile_S3_cleanSlot1 clears slot 1 and leaves the already-free
// slot 5 untouched.
func TestReconcile_S3_cleanSlot1(t *testing.T) {
	mockKube, mockQuery := newMocks(t)
	mockKube.EXPECT().FindPodsOnNode(gomock.Any(), nodeID).Return([]corev1.Pod{readyPod()}, nil)
	mockQuery.EXPECT().GetNodeSlots(gomock.Any()).Return(slots.Set{"config-a-3": {}}, nil)
	mockKube.EXPECT().GetInstances(gomock.Any()).Return([]akriv1.Instance{baselineInstance()}, nil)

	var updated akriv1.Instance
	mockKube.EXPECT().UpdateInstance(gomock.Any(), gomock.Any(), "config-a", "default").
		DoAndReturn(func(_ context.Context, i akriv1.Instance, _, _ string) error {
			updated = i
			return nil
		})

	r := New(mockKube, mockQuery, logr.Discard())
	require.NoError(t, r.Reconcile(context.Background(), nodeID, ""))

	require.Equal(t, akriv1.NodeID(""), updated.Spec.DeviceUsage["config-a-1"])
	require.Equal(t, akriv1.NodeID(""), updated.Spec.DeviceUsage["config-a-5"])
	require.Equal(t, akriv1.NodeID(nodeID), updated.Spec.DeviceUsage["config-a-3"])
}

// TestReconcile_S4_probeErrorSkipsInstances asserts that a probe failure
// short-circuits before GetInstances is ever called.
func TestReconcile_S4_probeErrorSkipsInstances(t *testing.T) {
	mockKube, mockQuery := newMocks(t)
	mockKube.EXPECT().FindPodsOnNode(gomock.Any(), nodeID).Return([]corev1.Pod{readyPod()}, nil)
	mockQuery.EXPECT().GetNodeSlots(gomock.Any()).Return(nil, errors.New("crictl: connection refused"))
	mockKube.EXPECT().GetInstances(gomock.Any()).Times(0)
	mockKube.EXPECT().UpdateInstance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	r := New(mockKube, mockQuery, logr.Discard())
	require.Error(t, r.Reconcile(context.Background(), nodeID, ""))
}

// TestReconcile_S5_unreadyPodSkipsProbe asserts that an unready pod on this
// node skips the probe and the update entirely.
func TestReconcile_S5_unreadyPodSkipsProbe(t *testing.T) {
	mockKube, mockQuery := newMocks(t)
	mockKube.EXPECT().FindPodsOnNode(gomock.Any(), nodeID).Return([]corev1.Pod{readyPod(), unreadyPod()}, nil)
	mockQuery.EXPECT().GetNodeSlots(gomock.Any()).Times(0)
	mockKube.EXPECT().GetInstances(gomock.Any()).Times(0)

	r := New(mockKube, mockQuery, logr.Discard())
	require.NoError(t, r.Reconcile(context.Background(), nodeID, ""))
}

// TestReconcile_S6_temporaryFlapConverges runs two passes over the same
// fixture sequence and asserts exactly one update per pass, demonstrating
// Idempotence and Convergence together.
func TestReconcile_S6_temporaryFlapConverges(t *testing.T) {
	mockKube, mockQuery := newMocks(t)
	instance := baselineInstance()

	gomock.InOrder(
		mockQuery.EXPECT().GetNodeSlots(gomock.Any()).Return(slots.Set{"config-a-3": {}}, nil),
		mockQuery.EXPECT().GetNodeSlots(gomock.Any()).Return(slots.Set{"config-a-1": {}, "config-a-3": {}}, nil),
	)
	mockKube.EXPECT().FindPodsOnNode(gomock.Any(), nodeID).Return([]corev1.Pod{readyPod()}, nil).Times(2)
	mockKube.EXPECT().GetInstances(gomock.Any()).DoAndReturn(
		func(context.Context) ([]akriv1.Instance, error) { return []akriv1.Instance{instance}, nil },
	).Times(2)

	mockKube.EXPECT().UpdateInstance(gomock.Any(), gomock.Any(), "config-a", "default").
		DoAndReturn(func(_ context.Context, i akriv1.Instance, _, _ string) error {
			instance = i
			return nil
		}).Times(2)

	r := New(mockKube, mockQuery, logr.Discard())
	require.NoError(t, r.Reconcile(context.Background(), nodeID, ""))
	require.Equal(t, akriv1.NodeID(""), instance.Spec.DeviceUsage["config-a-1"])

	require.NoError(t, r.Reconcile(context.Background(), nodeID, ""))
	require.Equal(t, akriv1.NodeID(nodeID), instance.Spec.DeviceUsage["config-a-1"])
}
