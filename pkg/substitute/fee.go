package substitute

import (
	"fmt"

	"github.com/ieglobal/go-docgen/pkg/agreement"
)

// FeeDescription returns the fee sentence for model. Variants carrying a
// blank or non-numeric amount are described with the unspecified sentence.
func FeeDescription(model agreement.FeeModel) string {
	switch m := model.(type) {
	case agreement.FixedRetainer:
		return feeSentence(feeRetainerSentence, m.MonthlyFee)
	case agreement.HourlyRate:
		return feeSentence(feeHourlySentence, m.Rate)
	case agreement.ReferralCommission:
		return feeSentence(feeCommissionSentence, m.Percent)
	case agreement.RevenueShare:
		return feeSentence(feeRevenueSentence, m.Percent)
	default:
		return FeeUnspecifiedSentence
	}
}

func feeSentence(format, amount string) string {
	value := Sanitize(amount)
	if value == "" || !agreement.IsNumeric(value) {
		return FeeUnspecifiedSentence
	}
	return fmt.Sprintf(format, value)
}
