/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Important: Run "make" to regenerate code after modifying this file

// SlotID uniquely identifies one usage slot of one device instance, e.g.
// "config-a-359973-3".
type SlotID string

// NodeID names a cluster node.  The empty NodeID means a slot is
// unallocated.
type NodeID string

// InstanceSpec defines the desired state of an Instance.
type InstanceSpec struct {
	// ConfigurationName is the device-discovery configuration that produced
	// this instance.
	ConfigurationName string `json:"configurationName"`

	// Metadata is opaque, discovery-handler-specific data describing the
	// device.  The reconciler never interprets it, only preserves it.
	Metadata map[string]string `json:"metadata,omitempty"`

	// RBAC is opaque access-control data associated with the instance.  The
	// reconciler never interprets it, only preserves it.
	RBAC map[string]string `json:"rbac,omitempty"`

	// Shared indicates whether multiple nodes may allocate slots on this
	// instance.
	Shared bool `json:"shared"`

	// Nodes is the set of node names currently visible to this instance.
	Nodes []NodeID `json:"nodes,omitempty"`

	// DeviceUsage maps each of the instance's fixed slot identifiers to the
	// NodeID that currently owns it, or the empty string if the slot is
	// free.  The key set is fixed at instance creation; the reconciler never
	// adds or removes keys.
	DeviceUsage map[SlotID]NodeID `json:"deviceUsage"`
}

// InstanceStatus defines the observed state of an Instance.  The
// reconciliation algorithm in this repository does not consult or mutate
// status; it is carried only to keep the type a faithful CRD.
type InstanceStatus struct{}

// +kubebuilder:object:root=true

// Instance is the Schema for the instances API. It is the orchestrator's
// record of one discovered device and the allocation state of its slots.
type Instance struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   InstanceSpec   `json:"spec,omitempty"`
	Status InstanceStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// InstanceList contains a list of Instance.
type InstanceList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Instance `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Instance{}, &InstanceList{})
}
