package agreement

import (
	"regexp"
	"strings"

	"github.com/ieglobal/go-docgen/pkg/document"
)

// Blank is the print-and-fill placeholder used when an identity field is
// missing.
const Blank = "____________________"

// DefaultCountry is assumed for counterparties that omit their country.
const DefaultCountry = "Netherlands"

// FieldKind describes how a field value is validated and prompted.
type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindNumber FieldKind = "number"
	FieldKindDate   FieldKind = "date"
	FieldKindEmail  FieldKind = "email"
)

// Field documents one scalar input value: the placeholder token it feeds, its
// prompt label, and the default substituted when the value is blank.
type Field struct {
	Key     string    `json:"key" yaml:"key"`
	Label   string    `json:"label" yaml:"label"`
	Kind    FieldKind `json:"kind" yaml:"kind"`
	Default string    `json:"default" yaml:"default"`
	Help    string    `json:"help,omitempty" yaml:"help,omitempty"`
}

// ServicesKey is the wire name of the selected service categories list.
const ServicesKey = "services"

// ServiceCategories are the categories offered by the dashboard. Callers may
// pass any other free-form category as well.
var ServiceCategories = []string{
	"Web development",
	"Mobile app development",
	"UX/UI design",
	"Cloud infrastructure",
	"Data engineering",
	"AI and machine learning",
	"Consulting",
	"Maintenance and support",
}

var standardFields = []Field{
	{Key: "organization_name", Label: "Organization name", Kind: FieldKindText, Default: Blank},
	{Key: "contact_name", Label: "Contact person", Kind: FieldKindText, Default: Blank},
	{Key: "contact_title", Label: "Contact title", Kind: FieldKindText, Default: Blank},
	{Key: "address", Label: "Street address", Kind: FieldKindText, Default: Blank},
	{Key: "postal_code", Label: "Postal code", Kind: FieldKindText, Default: Blank},
	{Key: "city", Label: "City", Kind: FieldKindText, Default: Blank},
	{Key: "country", Label: "Country", Kind: FieldKindText, Default: DefaultCountry},
	{Key: "registration_number", Label: "Chamber of Commerce number", Kind: FieldKindText, Default: Blank},
	{Key: "vat_number", Label: "VAT number", Kind: FieldKindText, Default: Blank},
	{Key: "email", Label: "E-mail", Kind: FieldKindEmail, Default: Blank},
	{Key: "phone", Label: "Phone", Kind: FieldKindText, Default: Blank},
	{Key: "effective_date", Label: "Effective date", Kind: FieldKindDate, Default: Blank},
	{Key: "term_months", Label: "Term (months)", Kind: FieldKindNumber, Default: "12"},
	{Key: "notice_days", Label: "Notice period (days)", Kind: FieldKindNumber, Default: "30"},
	{Key: "confidentiality_years", Label: "Confidentiality term (years)", Kind: FieldKindNumber, Default: "3"},
	{Key: "payment_days", Label: "Payment term (days)", Kind: FieldKindNumber, Default: "30"},
	{Key: "project_name", Label: "Project name", Kind: FieldKindText, Default: "the Project"},
	{Key: "project_description", Label: "Project description", Kind: FieldKindText, Default: "the design, development and delivery of the software described in the accepted quotation"},
	{Key: "deliverables", Label: "Deliverables", Kind: FieldKindText, Default: "the deliverables listed in the accepted quotation"},
	{Key: "start_date", Label: "Start date", Kind: FieldKindDate, Default: Blank},
	{Key: "end_date", Label: "End date", Kind: FieldKindDate, Default: Blank},
	{Key: "project_fee", Label: "Project fee", Kind: FieldKindText, Default: "as set out in the accepted quotation", Help: "Include the currency, e.g. EUR 12,500"},
	{Key: "response_hours", Label: "Response time (hours)", Kind: FieldKindNumber, Default: "24"},
	{Key: "resolution_hours", Label: "Resolution target (hours)", Kind: FieldKindNumber, Default: "72"},
	{Key: "uptime_percentage", Label: "Uptime commitment (%)", Kind: FieldKindNumber, Default: "99.5"},
	{Key: "service_credit_pct", Label: "Service credit (% of monthly fee)", Kind: FieldKindNumber, Default: "5"},
	{Key: "support_window", Label: "Support window", Kind: FieldKindText, Default: "Monday to Friday, 09:00 to 17:00 CET, excluding Dutch public holidays"},
	{Key: "support_hours", Label: "Included support hours per month", Kind: FieldKindNumber, Default: "8"},
	{Key: "support_fee", Label: "Support fee", Kind: FieldKindText, Default: "as set out in the accepted quotation", Help: "Include the currency and period, e.g. EUR 750 per month"},
	{Key: "processing_purpose", Label: "Processing purpose", Kind: FieldKindText, Default: "the provision of the Services under the Main Agreement"},
	{Key: "data_categories", Label: "Categories of personal data", Kind: FieldKindText, Default: "contact details, account credentials, usage data and any personal data contained in content uploaded by the Controller"},
	{Key: "data_subjects", Label: "Categories of data subjects", Kind: FieldKindText, Default: "employees, customers and end users of the Controller"},
	{Key: "sub_processors", Label: "Sub-processors", Kind: FieldKindText, Default: "the hosting and infrastructure providers notified to the Controller in writing"},
	{Key: "breach_notice_hours", Label: "Breach notification (hours)", Kind: FieldKindNumber, Default: "48"},
}

var partnershipFields = []Field{
	{Key: "partner_name", Label: "Partner name", Kind: FieldKindText, Default: Blank},
	{Key: "partner_contact_name", Label: "Partner contact person", Kind: FieldKindText, Default: Blank},
	{Key: "partner_contact_title", Label: "Partner contact title", Kind: FieldKindText, Default: Blank},
	{Key: "partner_address", Label: "Partner street address", Kind: FieldKindText, Default: Blank},
	{Key: "partner_postal_code", Label: "Partner postal code", Kind: FieldKindText, Default: Blank},
	{Key: "partner_city", Label: "Partner city", Kind: FieldKindText, Default: Blank},
	{Key: "partner_country", Label: "Partner country", Kind: FieldKindText, Default: DefaultCountry},
	{Key: "partner_registration_number", Label: "Partner Chamber of Commerce number", Kind: FieldKindText, Default: Blank},
	{Key: "partner_vat_number", Label: "Partner VAT number", Kind: FieldKindText, Default: Blank},
	{Key: "partner_email", Label: "Partner e-mail", Kind: FieldKindEmail, Default: Blank},
	{Key: "partner_phone", Label: "Partner phone", Kind: FieldKindText, Default: Blank},
	{Key: "effective_date", Label: "Effective date", Kind: FieldKindDate, Default: Blank},
	{Key: "term_months", Label: "Term (months)", Kind: FieldKindNumber, Default: "24"},
	{Key: "notice_days", Label: "Notice period (days)", Kind: FieldKindNumber, Default: "60"},
	{Key: "payment_days", Label: "Payment term (days)", Kind: FieldKindNumber, Default: "30"},
	{Key: "partnership_scope", Label: "Partnership scope", Kind: FieldKindText, Default: "the joint acquisition and delivery of software development and digital transformation projects"},
	{Key: "territory", Label: "Territory", Kind: FieldKindText, Default: "the European Union"},
}

// Fields returns the scalar field catalog for an input family in prompt order.
func Fields(family document.Family) []Field {
	var src []Field
	switch family {
	case document.FamilyPartnership:
		src = partnershipFields
	default:
		src = standardFields
	}
	out := make([]Field, len(src))
	copy(out, src)
	return out
}

// FieldByKey looks up a catalog entry.
func FieldByKey(family document.Family, key string) (Field, bool) {
	for _, field := range Fields(family) {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

var numericPattern = regexp.MustCompile(`^\d{1,3}(,\d{3})*(\.\d+)?$|^\d+(\.\d+)?$`)

// IsNumeric reports whether value is a plain non-negative number such as
// "12", "99.5" or "12,500.00".
func IsNumeric(value string) bool {
	return numericPattern.MatchString(strings.TrimSpace(value))
}

// NumericPattern exposes the expression used by IsNumeric so schema
// generation stays in sync with substitution.
func NumericPattern() string {
	return numericPattern.String()
}
