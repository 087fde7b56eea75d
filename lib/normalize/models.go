// Package normalize turns a validated raw plan into the typed resource model
// of a Terraform plan.
package normalize

import tfjson "github.com/hashicorp/terraform-json"

// ResourceAction is the closed action variant.
type ResourceAction string

// ResourceAction values.
const (
	ActionCreate ResourceAction = "CREATE"
	ActionUpdate ResourceAction = "UPDATE"
	ActionDelete ResourceAction = "DELETE"
	ActionRead   ResourceAction = "READ"
	ActionNoOp   ResourceAction = "NO_OP"
)

// Changed reports whether the action is one that participates in blast-radius
// computation (action ∈ {CREATE, UPDATE, DELETE}).
func (a ResourceAction) Changed() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// FromActions maps a Terraform verb sequence to a ResourceAction using the
// destructive-precedence rule: any DELETE
// wins, else any UPDATE wins, else any CREATE wins, else NO_OP/READ.
func FromActions(actions tfjson.Actions) ResourceAction {
	if len(actions) == 0 {
		return ActionNoOp
	}

	hasDelete, hasUpdate, hasCreate, hasRead := false, false, false, false
	for _, a := range actions {
		switch a {
		case tfjson.ActionDelete:
			hasDelete = true
		case tfjson.ActionUpdate:
			hasUpdate = true
		case tfjson.ActionCreate:
			hasCreate = true
		case tfjson.ActionRead:
			hasRead = true
		}
	}

	switch {
	case hasDelete:
		return ActionDelete
	case hasUpdate:
		return ActionUpdate
	case hasCreate:
		return ActionCreate
	case hasRead:
		return ActionRead
	default:
		return ActionNoOp
	}
}

// NormalizedResource is the normalized per-resource tuple.
type NormalizedResource struct {
	ID        string
	Module    string
	Type      string
	Address   string
	Action    ResourceAction
	DependsOn map[string]struct{}
	Before    map[string]any
	After     map[string]any
}

// SortedDependsOn returns DependsOn as a case-sensitive ascending sorted slice.
func (r NormalizedResource) SortedDependsOn() []string {
	out := make([]string, 0, len(r.DependsOn))
	for addr := range r.DependsOn {
		out = append(out, addr)
	}
	sortStrings(out)
	return out
}

// NormalizedPlan is the ordered sequence of NormalizedResource plus an
// address index, guaranteeing unique addresses.
type NormalizedPlan struct {
	Resources []NormalizedResource
	index     map[string]int
}

// ByAddress returns the resource at the given address, if any.
func (p *NormalizedPlan) ByAddress(address string) (NormalizedResource, bool) {
	i, ok := p.index[address]
	if !ok {
		return NormalizedResource{}, false
	}
	return p.Resources[i], true
}

// Addresses returns the set of all known addresses.
func (p *NormalizedPlan) Addresses() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Resources))
	for _, r := range p.Resources {
		set[r.Address] = struct{}{}
	}
	return set
}
