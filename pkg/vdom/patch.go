package vdom

import "github.com/vango-dev/zx/pkg/zx"

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchUpdate    PatchOp = iota + 1 // Set and remove attributes on Target
	PatchPlacement                    // Build New and insert it into Parent
	PatchDeletion                     // Remove Target from Parent
	PatchReplace                      // Build New and swap it in for Target
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchUpdate:
		return "Update"
	case PatchPlacement:
		return "Placement"
	case PatchDeletion:
		return "Deletion"
	case PatchReplace:
		return "Replace"
	default:
		return "Unknown"
	}
}

// Patch is a single reconciliation step. Patches reference live VElements
// and must be applied in the order Diff produced them.
type Patch struct {
	Op     PatchOp
	Target *VElement    // Update, Deletion, Replace
	Parent *VElement    // Placement, Deletion, Replace; nil for the root
	New    zx.Component // Update (node snapshot), Placement, Replace
	Ref    *VElement    // Placement: insert before Ref, append when nil

	SetAttrs    map[string]string // Update
	RemoveAttrs []string          // Update, sorted
}
