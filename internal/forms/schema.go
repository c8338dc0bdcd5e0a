// Package forms declares one field schema per concrete document type and a
// single generic validator driven by those schemas. Validation never fails
// hard: it reports which requirements are unmet so the wizard can gate the
// proceed action.
package forms

import "sort"

// CondRequirement marks a field as mandatory only when a sibling field holds
// a specific value (e.g. a termination date only for fixed-term leases).
type CondRequirement struct {
	Field  string // field that becomes required
	When   string // sibling field inspected
	Equals string // value of When that triggers the requirement
}

// Schema declares the fillable fields of one document type.
type Schema struct {
	DocumentType string
	// Defaults is the initial field map; every known field appears here,
	// usually with an empty string default.
	Defaults map[string]string
	// Required fields must be non-blank.
	Required []string
	// AnyOf groups require at least one truthy member each.
	AnyOf [][]string
	// RequiredIf fields are mandatory only when their condition holds.
	RequiredIf []CondRequirement
}

// Result reports the outcome of validating a field map against a schema.
type Result struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing,omitempty"`
}

// InitialFields returns a fresh copy of the schema's default field map.
func (s *Schema) InitialFields() map[string]string {
	out := make(map[string]string, len(s.Defaults))
	for k, v := range s.Defaults {
		out[k] = v
	}
	return out
}

// truthy treats empty strings and common negative literals as unset; this is
// how checkbox groups arrive from the client.
func truthy(v string) bool {
	switch v {
	case "", "false", "0", "no", "off":
		return false
	}
	return true
}

// Validate recomputes validity for the given field map. Fields absent from
// the map count as blank. The result lists every unmet requirement; it never
// errors.
func (s *Schema) Validate(fields map[string]string) Result {
	var missing []string

	for _, f := range s.Required {
		if fields[f] == "" {
			missing = append(missing, f)
		}
	}

	for _, group := range s.AnyOf {
		satisfied := false
		for _, f := range group {
			if truthy(fields[f]) {
				satisfied = true
				break
			}
		}
		if !satisfied && len(group) > 0 {
			missing = append(missing, "one of "+joinFields(group))
		}
	}

	for _, cond := range s.RequiredIf {
		if fields[cond.When] == cond.Equals && fields[cond.Field] == "" {
			missing = append(missing, cond.Field)
		}
	}

	sort.Strings(missing)
	return Result{Valid: len(missing) == 0, Missing: missing}
}

func joinFields(group []string) string {
	out := ""
	for i, f := range group {
		if i > 0 {
			out += "|"
		}
		out += f
	}
	return out
}
