package agreement

import (
	"strings"

	"github.com/ieglobal/go-docgen/pkg/document"
)

// Record is implemented by the two input shapes. It is sealed: the
// substitution engine switches on the concrete type.
type Record interface {
	// Family reports the input shape.
	Family() document.Family
	// DisplayName is the counterparty or partner name used for signatures and
	// filenames. It may be blank.
	DisplayName() string
	// Values returns the raw scalar values keyed by catalog field key.
	Values() map[string]string
	// ServiceList returns the selected service categories in caller order.
	ServiceList() []string

	isRecord()
}

// Input is the standard counterparty record used by every document type except
// the partnership agreement. All fields are optional.
type Input struct {
	OrganizationName   string `json:"organization_name,omitempty" yaml:"organization_name,omitempty"`
	ContactName        string `json:"contact_name,omitempty" yaml:"contact_name,omitempty"`
	ContactTitle       string `json:"contact_title,omitempty" yaml:"contact_title,omitempty"`
	Address            string `json:"address,omitempty" yaml:"address,omitempty"`
	PostalCode         string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	City               string `json:"city,omitempty" yaml:"city,omitempty"`
	Country            string `json:"country,omitempty" yaml:"country,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty" yaml:"registration_number,omitempty"`
	VATNumber          string `json:"vat_number,omitempty" yaml:"vat_number,omitempty"`
	Email              string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone              string `json:"phone,omitempty" yaml:"phone,omitempty"`

	EffectiveDate        string `json:"effective_date,omitempty" yaml:"effective_date,omitempty"`
	TermMonths           string `json:"term_months,omitempty" yaml:"term_months,omitempty"`
	NoticeDays           string `json:"notice_days,omitempty" yaml:"notice_days,omitempty"`
	ConfidentialityYears string `json:"confidentiality_years,omitempty" yaml:"confidentiality_years,omitempty"`
	PaymentDays          string `json:"payment_days,omitempty" yaml:"payment_days,omitempty"`

	ProjectName        string `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	ProjectDescription string `json:"project_description,omitempty" yaml:"project_description,omitempty"`
	Deliverables       string `json:"deliverables,omitempty" yaml:"deliverables,omitempty"`
	StartDate          string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate            string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	ProjectFee         string `json:"project_fee,omitempty" yaml:"project_fee,omitempty"`

	ResponseHours    string `json:"response_hours,omitempty" yaml:"response_hours,omitempty"`
	ResolutionHours  string `json:"resolution_hours,omitempty" yaml:"resolution_hours,omitempty"`
	UptimePercentage string `json:"uptime_percentage,omitempty" yaml:"uptime_percentage,omitempty"`
	ServiceCreditPct string `json:"service_credit_pct,omitempty" yaml:"service_credit_pct,omitempty"`
	SupportWindow    string `json:"support_window,omitempty" yaml:"support_window,omitempty"`
	SupportHours     string `json:"support_hours,omitempty" yaml:"support_hours,omitempty"`
	SupportFee       string `json:"support_fee,omitempty" yaml:"support_fee,omitempty"`

	ProcessingPurpose string `json:"processing_purpose,omitempty" yaml:"processing_purpose,omitempty"`
	DataCategories    string `json:"data_categories,omitempty" yaml:"data_categories,omitempty"`
	DataSubjects      string `json:"data_subjects,omitempty" yaml:"data_subjects,omitempty"`
	SubProcessors     string `json:"sub_processors,omitempty" yaml:"sub_processors,omitempty"`
	BreachNoticeHours string `json:"breach_notice_hours,omitempty" yaml:"breach_notice_hours,omitempty"`

	Services []string `json:"services,omitempty" yaml:"services,omitempty"`
}

var _ Record = Input{}

func (Input) Family() document.Family { return document.FamilyStandard }

func (in Input) DisplayName() string { return strings.TrimSpace(in.OrganizationName) }

func (in Input) ServiceList() []string { return append([]string(nil), in.Services...) }

func (in Input) Values() map[string]string {
	return map[string]string{
		"organization_name":     in.OrganizationName,
		"contact_name":          in.ContactName,
		"contact_title":         in.ContactTitle,
		"address":               in.Address,
		"postal_code":           in.PostalCode,
		"city":                  in.City,
		"country":               in.Country,
		"registration_number":   in.RegistrationNumber,
		"vat_number":            in.VATNumber,
		"email":                 in.Email,
		"phone":                 in.Phone,
		"effective_date":        in.EffectiveDate,
		"term_months":           in.TermMonths,
		"notice_days":           in.NoticeDays,
		"confidentiality_years": in.ConfidentialityYears,
		"payment_days":          in.PaymentDays,
		"project_name":          in.ProjectName,
		"project_description":   in.ProjectDescription,
		"deliverables":          in.Deliverables,
		"start_date":            in.StartDate,
		"end_date":              in.EndDate,
		"project_fee":           in.ProjectFee,
		"response_hours":        in.ResponseHours,
		"resolution_hours":      in.ResolutionHours,
		"uptime_percentage":     in.UptimePercentage,
		"service_credit_pct":    in.ServiceCreditPct,
		"support_window":        in.SupportWindow,
		"support_hours":         in.SupportHours,
		"support_fee":           in.SupportFee,
		"processing_purpose":    in.ProcessingPurpose,
		"data_categories":       in.DataCategories,
		"data_subjects":         in.DataSubjects,
		"sub_processors":        in.SubProcessors,
		"breach_notice_hours":   in.BreachNoticeHours,
	}
}

func (Input) isRecord() {}

// PartnershipInput is the record consumed by the partnership agreement. Fee is
// never nil after decoding; a nil Fee is treated as UnspecifiedFee.
type PartnershipInput struct {
	PartnerName               string `json:"partner_name,omitempty" yaml:"partner_name,omitempty"`
	PartnerContactName        string `json:"partner_contact_name,omitempty" yaml:"partner_contact_name,omitempty"`
	PartnerContactTitle       string `json:"partner_contact_title,omitempty" yaml:"partner_contact_title,omitempty"`
	PartnerAddress            string `json:"partner_address,omitempty" yaml:"partner_address,omitempty"`
	PartnerPostalCode         string `json:"partner_postal_code,omitempty" yaml:"partner_postal_code,omitempty"`
	PartnerCity               string `json:"partner_city,omitempty" yaml:"partner_city,omitempty"`
	PartnerCountry            string `json:"partner_country,omitempty" yaml:"partner_country,omitempty"`
	PartnerRegistrationNumber string `json:"partner_registration_number,omitempty" yaml:"partner_registration_number,omitempty"`
	PartnerVATNumber          string `json:"partner_vat_number,omitempty" yaml:"partner_vat_number,omitempty"`
	PartnerEmail              string `json:"partner_email,omitempty" yaml:"partner_email,omitempty"`
	PartnerPhone              string `json:"partner_phone,omitempty" yaml:"partner_phone,omitempty"`

	EffectiveDate    string `json:"effective_date,omitempty" yaml:"effective_date,omitempty"`
	TermMonths       string `json:"term_months,omitempty" yaml:"term_months,omitempty"`
	NoticeDays       string `json:"notice_days,omitempty" yaml:"notice_days,omitempty"`
	PaymentDays      string `json:"payment_days,omitempty" yaml:"payment_days,omitempty"`
	PartnershipScope string `json:"partnership_scope,omitempty" yaml:"partnership_scope,omitempty"`
	Territory        string `json:"territory,omitempty" yaml:"territory,omitempty"`

	Services []string `json:"services,omitempty" yaml:"services,omitempty"`
	Fee      FeeModel `json:"-" yaml:"-"`
}

var _ Record = PartnershipInput{}

func (PartnershipInput) Family() document.Family { return document.FamilyPartnership }

func (in PartnershipInput) DisplayName() string { return strings.TrimSpace(in.PartnerName) }

func (in PartnershipInput) ServiceList() []string { return append([]string(nil), in.Services...) }

func (in PartnershipInput) Values() map[string]string {
	return map[string]string{
		"partner_name":                in.PartnerName,
		"partner_contact_name":        in.PartnerContactName,
		"partner_contact_title":       in.PartnerContactTitle,
		"partner_address":             in.PartnerAddress,
		"partner_postal_code":         in.PartnerPostalCode,
		"partner_city":                in.PartnerCity,
		"partner_country":             in.PartnerCountry,
		"partner_registration_number": in.PartnerRegistrationNumber,
		"partner_vat_number":          in.PartnerVATNumber,
		"partner_email":               in.PartnerEmail,
		"partner_phone":               in.PartnerPhone,
		"effective_date":              in.EffectiveDate,
		"term_months":                 in.TermMonths,
		"notice_days":                 in.NoticeDays,
		"payment_days":                in.PaymentDays,
		"partnership_scope":           in.PartnershipScope,
		"territory":                   in.Territory,
	}
}

// FeeModel returns the fee variant, substituting UnspecifiedFee for nil.
func (in PartnershipInput) FeeModel() FeeModel {
	if in.Fee == nil {
		return UnspecifiedFee{}
	}
	return in.Fee
}

func (PartnershipInput) isRecord() {}

// FromValues builds a record of the requested family from flat key/value
// pairs (the shape produced by prompts and CLI flags). Unknown keys are
// ignored; fee keys follow the FeeTerms wire names.
func FromValues(family document.Family, values map[string]string, services []string) Record {
	get := func(key string) string { return values[key] }
	if family == document.FamilyPartnership {
		terms := FeeTerms{
			Model:           get("fee_model"),
			MonthlyRetainer: get("monthly_retainer"),
			HourlyRate:      get("hourly_rate"),
			CommissionPct:   get("commission_pct"),
			RevenueSharePct: get("revenue_share_pct"),
		}
		return PartnershipInput{
			PartnerName:               get("partner_name"),
			PartnerContactName:        get("partner_contact_name"),
			PartnerContactTitle:       get("partner_contact_title"),
			PartnerAddress:            get("partner_address"),
			PartnerPostalCode:         get("partner_postal_code"),
			PartnerCity:               get("partner_city"),
			PartnerCountry:            get("partner_country"),
			PartnerRegistrationNumber: get("partner_registration_number"),
			PartnerVATNumber:          get("partner_vat_number"),
			PartnerEmail:              get("partner_email"),
			PartnerPhone:              get("partner_phone"),
			EffectiveDate:             get("effective_date"),
			TermMonths:                get("term_months"),
			NoticeDays:                get("notice_days"),
			PaymentDays:               get("payment_days"),
			PartnershipScope:          get("partnership_scope"),
			Territory:                 get("territory"),
			Services:                  append([]string(nil), services...),
			Fee:                       terms.Resolve(),
		}
	}
	return Input{
		OrganizationName:     get("organization_name"),
		ContactName:          get("contact_name"),
		ContactTitle:         get("contact_title"),
		Address:              get("address"),
		PostalCode:           get("postal_code"),
		City:                 get("city"),
		Country:              get("country"),
		RegistrationNumber:   get("registration_number"),
		VATNumber:            get("vat_number"),
		Email:                get("email"),
		Phone:                get("phone"),
		EffectiveDate:        get("effective_date"),
		TermMonths:           get("term_months"),
		NoticeDays:           get("notice_days"),
		ConfidentialityYears: get("confidentiality_years"),
		PaymentDays:          get("payment_days"),
		ProjectName:          get("project_name"),
		ProjectDescription:   get("project_description"),
		Deliverables:         get("deliverables"),
		StartDate:            get("start_date"),
		EndDate:              get("end_date"),
		ProjectFee:           get("project_fee"),
		ResponseHours:        get("response_hours"),
		ResolutionHours:      get("resolution_hours"),
		UptimePercentage:     get("uptime_percentage"),
		ServiceCreditPct:     get("service_credit_pct"),
		SupportWindow:        get("support_window"),
		SupportHours:         get("support_hours"),
		SupportFee:           get("support_fee"),
		ProcessingPurpose:    get("processing_purpose"),
		DataCategories:       get("data_categories"),
		DataSubjects:         get("data_subjects"),
		SubProcessors:        get("sub_processors"),
		BreachNoticeHours:    get("breach_notice_hours"),
		Services:             append([]string(nil), services...),
	}
}
