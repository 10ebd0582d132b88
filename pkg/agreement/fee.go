package agreement

import "strings"

// FeeModelKind is the explicit discriminant of a partnership fee model.
type FeeModelKind string

const (
	FeeKindFixedRetainer      FeeModelKind = "A"
	FeeKindHourlyRate         FeeModelKind = "B"
	FeeKindReferralCommission FeeModelKind = "C"
	FeeKindRevenueShare       FeeModelKind = "D"
	FeeKindUnspecified        FeeModelKind = ""
)

// FeeModel is a closed union: FixedRetainer, HourlyRate, ReferralCommission,
// RevenueShare or UnspecifiedFee. Every variant carries exactly the fields it
// needs and they are always present.
type FeeModel interface {
	Kind() FeeModelKind
	isFeeModel()
}

// FixedRetainer (model A) is a fixed monthly amount in euro.
type FixedRetainer struct {
	MonthlyFee string
}

// HourlyRate (model B) bills delivered hours at a fixed euro rate.
type HourlyRate struct {
	Rate string
}

// ReferralCommission (model C) pays a percentage of the first-year contract
// value of introduced clients.
type ReferralCommission struct {
	Percent string
}

// RevenueShare (model D) shares a percentage of net revenue of joint projects.
type RevenueShare struct {
	Percent string
}

// UnspecifiedFee defers fees to the statement of work.
type UnspecifiedFee struct{}

func (FixedRetainer) Kind() FeeModelKind      { return FeeKindFixedRetainer }
func (HourlyRate) Kind() FeeModelKind         { return FeeKindHourlyRate }
func (ReferralCommission) Kind() FeeModelKind { return FeeKindReferralCommission }
func (RevenueShare) Kind() FeeModelKind       { return FeeKindRevenueShare }
func (UnspecifiedFee) Kind() FeeModelKind     { return FeeKindUnspecified }

func (FixedRetainer) isFeeModel()      {}
func (HourlyRate) isFeeModel()         {}
func (ReferralCommission) isFeeModel() {}
func (RevenueShare) isFeeModel()       {}
func (UnspecifiedFee) isFeeModel()     {}

// FeeTerms is the flat wire shape of a fee model as submitted by the
// dashboard: a selector plus the numeric fields of every variant.
type FeeTerms struct {
	Model           string `json:"fee_model,omitempty" yaml:"fee_model,omitempty"`
	MonthlyRetainer string `json:"monthly_retainer,omitempty" yaml:"monthly_retainer,omitempty"`
	HourlyRate      string `json:"hourly_rate,omitempty" yaml:"hourly_rate,omitempty"`
	CommissionPct   string `json:"commission_pct,omitempty" yaml:"commission_pct,omitempty"`
	RevenueSharePct string `json:"revenue_share_pct,omitempty" yaml:"revenue_share_pct,omitempty"`
}

// FeeModelOptions lists the accepted selectors with their descriptions.
var FeeModelOptions = []struct {
	Kind        FeeModelKind
	Description string
}{
	{FeeKindFixedRetainer, "Fixed monthly retainer"},
	{FeeKindHourlyRate, "Hourly rate"},
	{FeeKindReferralCommission, "Referral commission"},
	{FeeKindRevenueShare, "Revenue share"},
}

// Resolve converts the wire shape into the union. A missing selector, an
// unknown selector, or a selected variant whose field is blank or not numeric
// yields UnspecifiedFee.
func (t FeeTerms) Resolve() FeeModel {
	switch FeeModelKind(strings.ToUpper(strings.TrimSpace(t.Model))) {
	case FeeKindFixedRetainer:
		if v, ok := numeric(t.MonthlyRetainer); ok {
			return FixedRetainer{MonthlyFee: v}
		}
	case FeeKindHourlyRate:
		if v, ok := numeric(t.HourlyRate); ok {
			return HourlyRate{Rate: v}
		}
	case FeeKindReferralCommission:
		if v, ok := numeric(t.CommissionPct); ok {
			return ReferralCommission{Percent: v}
		}
	case FeeKindRevenueShare:
		if v, ok := numeric(t.RevenueSharePct); ok {
			return RevenueShare{Percent: v}
		}
	}
	return UnspecifiedFee{}
}

// TermsOf flattens a fee model back into its wire shape.
func TermsOf(model FeeModel) FeeTerms {
	switch m := model.(type) {
	case FixedRetainer:
		return FeeTerms{Model: string(FeeKindFixedRetainer), MonthlyRetainer: m.MonthlyFee}
	case HourlyRate:
		return FeeTerms{Model: string(FeeKindHourlyRate), HourlyRate: m.Rate}
	case ReferralCommission:
		return FeeTerms{Model: string(FeeKindReferralCommission), CommissionPct: m.Percent}
	case RevenueShare:
		return FeeTerms{Model: string(FeeKindRevenueShare), RevenueSharePct: m.Percent}
	default:
		return FeeTerms{}
	}
}

func numeric(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" || !IsNumeric(value) {
		return "", false
	}
	return value, true
}
