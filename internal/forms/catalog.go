package forms

import "notaryflow/internal/doctype"

// schemas holds one declarative table per concrete document type. The keys
// must stay aligned with the doctype catalog leaves.
var schemas = map[string]*Schema{
	"affidavit": {
		DocumentType: "affidavit",
		Defaults: map[string]string{
			"affiant_name":    "",
			"affiant_address": "",
			"statement":       "",
			"state":           "",
			"county":          "",
			"sworn_date":      "",
		},
		Required: []string{"affiant_name", "affiant_address", "statement", "state", "county"},
	},

	"promissory-note": {
		DocumentType: "promissory-note",
		Defaults: map[string]string{
			"borrower_name":     "",
			"borrower_address":  "",
			"lender_name":       "",
			"lender_address":    "",
			"principal_amount":  "",
			"interest_rate":     "",
			"repayment_type":    "installments",
			"installment_count": "",
			"due_date":          "",
			"governing_state":   "",
		},
		Required: []string{
			"borrower_name", "borrower_address", "lender_name", "lender_address",
			"principal_amount", "interest_rate", "governing_state",
		},
		RequiredIf: []CondRequirement{
			{Field: "installment_count", When: "repayment_type", Equals: "installments"},
			{Field: "due_date", When: "repayment_type", Equals: "lump_sum"},
		},
	},

	"bill-of-sale": {
		DocumentType: "bill-of-sale",
		Defaults: map[string]string{
			"seller_name":      "",
			"seller_address":   "",
			"buyer_name":       "",
			"buyer_address":    "",
			"item_description": "",
			"sale_price":       "",
			"sale_date":        "",
			"odometer_reading": "",
			"is_vehicle":       "false",
		},
		Required: []string{
			"seller_name", "seller_address", "buyer_name", "buyer_address",
			"item_description", "sale_price", "sale_date",
		},
		RequiredIf: []CondRequirement{
			{Field: "odometer_reading", When: "is_vehicle", Equals: "true"},
		},
	},

	"last-will-testament": {
		DocumentType: "last-will-testament",
		Defaults: map[string]string{
			"testator_name":      "",
			"testator_address":   "",
			"executor_name":      "",
			"executor_address":   "",
			"beneficiaries":      "",
			"guardian_name":      "",
			"has_minor_children": "false",
			"residuary_clause":   "",
		},
		Required: []string{
			"testator_name", "testator_address", "executor_name",
			"executor_address", "beneficiaries",
		},
		RequiredIf: []CondRequirement{
			{Field: "guardian_name", When: "has_minor_children", Equals: "true"},
		},
	},

	"non-disclosure-agreement": {
		DocumentType: "non-disclosure-agreement",
		Defaults: map[string]string{
			"disclosing_party":  "",
			"receiving_party":   "",
			"purpose":           "",
			"effective_date":    "",
			"term_years":        "",
			"governing_state":   "",
			"mutual":            "false",
		},
		Required: []string{
			"disclosing_party", "receiving_party", "purpose",
			"effective_date", "governing_state",
		},
	},

	"residential-lease-agreement": {
		DocumentType: "residential-lease-agreement",
		Defaults: map[string]string{
			"landlord_name":      "",
			"tenant_name":        "",
			"property_address":   "",
			"monthly_rent":       "",
			"security_deposit":   "",
			"start_date":         "",
			"term_type":          "month_to_month",
			"end_date":           "",
			"pets_allowed":       "false",
			"utilities_included": "",
		},
		Required: []string{
			"landlord_name", "tenant_name", "property_address",
			"monthly_rent", "security_deposit", "start_date",
		},
		// An end date is mandatory only for fixed-term leases.
		RequiredIf: []CondRequirement{
			{Field: "end_date", When: "term_type", Equals: "fixed"},
		},
	},

	"commercial-lease-agreement": {
		DocumentType: "commercial-lease-agreement",
		Defaults: map[string]string{
			"landlord_name":     "",
			"tenant_name":       "",
			"business_name":     "",
			"premises_address":  "",
			"permitted_use":     "",
			"monthly_rent":      "",
			"start_date":        "",
			"term_type":         "fixed",
			"end_date":          "",
			"renewal_option":    "false",
		},
		Required: []string{
			"landlord_name", "tenant_name", "business_name",
			"premises_address", "permitted_use", "monthly_rent", "start_date",
		},
		RequiredIf: []CondRequirement{
			{Field: "end_date", When: "term_type", Equals: "fixed"},
		},
	},

	"general-power-of-attorney": {
		DocumentType: "general-power-of-attorney",
		Defaults: map[string]string{
			"principal_name":    "",
			"principal_address": "",
			"agent_name":        "",
			"agent_address":     "",
			"power_finances":    "false",
			"power_property":    "false",
			"power_business":    "false",
			"power_legal":       "false",
			"effective_date":    "",
			"governing_state":   "",
		},
		Required: []string{
			"principal_name", "principal_address", "agent_name",
			"agent_address", "effective_date", "governing_state",
		},
		// At least one granted power must be selected.
		AnyOf: [][]string{
			{"power_finances", "power_property", "power_business", "power_legal"},
		},
	},

	"durable-power-of-attorney": {
		DocumentType: "durable-power-of-attorney",
		Defaults: map[string]string{
			"principal_name":     "",
			"principal_address":  "",
			"agent_name":         "",
			"agent_address":      "",
			"alternate_agent":    "",
			"power_finances":     "false",
			"power_property":     "false",
			"power_healthcare":   "false",
			"durability_clause":  "true",
			"governing_state":    "",
		},
		Required: []string{
			"principal_name", "principal_address", "agent_name",
			"agent_address", "governing_state",
		},
		AnyOf: [][]string{
			{"power_finances", "power_property", "power_healthcare"},
		},
	},

	"medical-power-of-attorney": {
		DocumentType: "medical-power-of-attorney",
		Defaults: map[string]string{
			"principal_name":      "",
			"principal_address":   "",
			"agent_name":          "",
			"agent_phone":         "",
			"alternate_agent":     "",
			"life_support_wishes": "",
			"organ_donation":      "false",
			"governing_state":     "",
		},
		Required: []string{
			"principal_name", "principal_address", "agent_name",
			"agent_phone", "governing_state",
		},
	},

	doctype.CustomDocumentLeaf: {
		DocumentType: doctype.CustomDocumentLeaf,
		Defaults: map[string]string{
			"documentUrl":   "",
			"document_name": "",
		},
		Required: []string{"documentUrl"},
	},
}

// SchemaFor returns the schema for a concrete document type.
func SchemaFor(documentType string) (*Schema, bool) {
	s, ok := schemas[documentType]
	return s, ok
}

// All returns every registered schema, keyed by document type.
func All() map[string]*Schema {
	return schemas
}
