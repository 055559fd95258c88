// Package slots extracts device usage-slot identifiers from a container
// runtime inspection payload.
package slots

import (
	"encoding/json"

	"github.com/pkg/errors"

	akriv1 "github.com/romoh/akri/api/v1"
)

// slotAnnotationPrefix is the well-known annotation-key prefix that device
// plugins use to record the usage slot they allocated on a container.  The
// vendor segment is fixed for this agent; a multi-vendor deployment would
// need one agent per vendor prefix.
const slotAnnotationPrefix = "akri.sh/slot"

// runningState is the crictl container status that denotes a live
// container.  Non-running containers never contribute slots: the runtime
// may still be booting them, and they hold no actual device usage.
const runningState = "CONTAINER_RUNNING"

// Set is the collection of SlotIDs reported by one probe of the runtime.
type Set map[akriv1.SlotID]struct{}

// Contains reports whether id is a member of the set.
func (s Set) Contains(id akriv1.SlotID) bool {
	_, ok := s[id]
	return ok
}

// container mirrors the subset of crictl's `ps -v --output json` container
// record that this package reads. Unknown fields are ignored by
// encoding/json.
type container struct {
	Status struct {
		State string `json:"state"`
	} `json:"status"`
	Annotations map[string]string `json:"annotations"`
}

// psOutput is the top-level shape of `crictl ps -v --output json`.
type psOutput struct {
	Containers []container `json:"containers"`
}

// Parse reads a crictl ps inspection payload and returns the set of slot
// identifiers held by running containers on this node.
//
// Annotation keys are matched exactly against slotAnnotationPrefix; values
// from different containers collapse into the same set entry.  A
// syntactically valid payload with no matching annotations yields an empty,
// non-nil set. A malformed payload returns an error.
func Parse(payload []byte) (Set, error) {
	var out psOutput
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, errors.Wrap(err, "failed to parse crictl ps output")
	}

	slots := make(Set)
	for _, c := range out.Containers {
		if c.Status.State != runningState {
			continue
		}
		for key, value := range c.Annotations {
			if key != slotAnnotationPrefix {
				continue
			}
			slots[akriv1.SlotID(value)] = struct{}{}
		}
	}
	return slots, nil
}
