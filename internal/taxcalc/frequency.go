package taxcalc

import (
	taxcalcerrors "go-taxcalc/internal/taxcalc/errors"
)

type PayFrequency string

const (
	FrequencyDaily       PayFrequency = "daily"
	FrequencyWeekly      PayFrequency = "weekly"
	FrequencyFortnightly PayFrequency = "fortnightly"
	FrequencyMonthly     PayFrequency = "monthly"
	FrequencyYearly      PayFrequency = "yearly"
)

// Calendar approximations shared with the web calculators; changing them
// breaks parity with previously saved results.
const (
	workdaysPerMonth   = 22
	weeksPerMonth      = 4.33
	fortnightsPerMonth = 2.17
	monthsPerYear      = 12
)

// PayFrequencies lists every supported frequency.
func PayFrequencies() []PayFrequency {
	return []PayFrequency{
		FrequencyDaily,
		FrequencyWeekly,
		FrequencyFortnightly,
		FrequencyMonthly,
		FrequencyYearly,
	}
}

func (f PayFrequency) Valid() bool {
	_, err := ToMonthly(0, f)
	return err == nil
}

// ToMonthly converts amount paid at frequency into its monthly equivalent.
// Unknown frequencies are an error; there is no fallback multiplier.
func ToMonthly(amount float64, frequency PayFrequency) (float64, error) {
	switch frequency {
	case FrequencyDaily:
		return float64(amount * workdaysPerMonth), nil
	case FrequencyWeekly:
		return float64(amount * weeksPerMonth), nil
	case FrequencyFortnightly:
		return float64(amount * fortnightsPerMonth), nil
	case FrequencyMonthly:
		return amount, nil
	case FrequencyYearly:
		return float64(amount / monthsPerYear), nil
	default:
		return 0, invalid("frequency", "unsupported pay frequency "+quote(string(frequency)), "oneof", taxcalcerrors.ErrInvalidFrequency)
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
