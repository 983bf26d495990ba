package taxcalc

import (
	"go-taxcalc/internal/taxrates"
)

// Products below are wrapped in float64(...) so the compiler never fuses
// them into a multiply-add; results must match other IEEE-754 engines bit
// for bit.

// TaxBreakdown is the annual PAYE split for a taxable income.
type TaxBreakdown struct {
	FirstBracketIncome  float64 `json:"firstBracketIncome"`
	FirstBracketTax     float64 `json:"firstBracketTax"`
	SecondBracketIncome float64 `json:"secondBracketIncome"`
	SecondBracketTax    float64 `json:"secondBracketTax"`
	TotalAnnualTax      float64 `json:"totalAnnualTax"`
	MonthlyTax          float64 `json:"monthlyTax"`
}

// TaxCalculator turns annual taxable income into PAYE.
type TaxCalculator interface {
	Name() string
	Compute(taxableIncome float64) TaxBreakdown
}

// FlatRatePAYE applies the legacy single rate to all taxable income.
type FlatRatePAYE struct {
	rates *taxrates.RateTable
}

func NewFlatRatePAYE(rates *taxrates.RateTable) FlatRatePAYE {
	return FlatRatePAYE{rates: rates}
}

func (FlatRatePAYE) Name() string { return "flat" }

func (p FlatRatePAYE) Compute(taxableIncome float64) TaxBreakdown {
	total := float64(taxableIncome * p.rates.PAYE.Rate)
	return TaxBreakdown{
		FirstBracketIncome: taxableIncome,
		FirstBracketTax:    total,
		TotalAnnualTax:     total,
		MonthlyTax:         total / 12,
	}
}

// ProgressivePAYE taxes income up to FirstBracketThreshold at the first
// rate and everything above it at the second rate.
type ProgressivePAYE struct {
	rates *taxrates.RateTable
}

func NewProgressivePAYE(rates *taxrates.RateTable) ProgressivePAYE {
	return ProgressivePAYE{rates: rates}
}

func (ProgressivePAYE) Name() string { return "progressive" }

func (p ProgressivePAYE) Compute(taxableIncome float64) TaxBreakdown {
	threshold := p.rates.PAYE.FirstBracketThreshold

	firstIncome := min(taxableIncome, threshold)
	secondIncome := max(0, taxableIncome-threshold)

	firstTax := float64(firstIncome * p.rates.PAYE.FirstBracketRate)
	secondTax := float64(secondIncome * p.rates.PAYE.SecondBracketRate)
	total := firstTax + secondTax

	return TaxBreakdown{
		FirstBracketIncome:  firstIncome,
		FirstBracketTax:     firstTax,
		SecondBracketIncome: secondIncome,
		SecondBracketTax:    secondTax,
		TotalAnnualTax:      total,
		MonthlyTax:          total / 12,
	}
}

type PAYEInput struct {
	MonthlyIncome     float64  `json:"monthlyIncome"`
	PersonalAllowance *float64 `json:"personalAllowance,omitempty"` // annual; defaults to the rate table value
	OtherDeductions   *float64 `json:"otherDeductions,omitempty"`   // annual
}

type PAYEResult struct {
	MonthlyIncome     float64 `json:"monthlyIncome"`
	AnnualIncome      float64 `json:"annualIncome"`
	PersonalAllowance float64 `json:"personalAllowance"`
	TaxableIncome     float64 `json:"taxableIncome"`
	TotalTax          float64 `json:"totalTax"`
	MonthlyTax        float64 `json:"monthlyTax"`
	NetIncome         float64 `json:"netIncome"`
	EffectiveRate     float64 `json:"effectiveRate"`
}

func (in PAYEInput) Validate() error {
	if err := checkAmount("monthlyIncome", in.MonthlyIncome); err != nil {
		return err
	}
	if err := checkOptionalAmount("personalAllowance", in.PersonalAllowance); err != nil {
		return err
	}
	return checkOptionalAmount("otherDeductions", in.OtherDeductions)
}

// CalculatePAYE runs the basic flat-rate PAYE calculation.
func CalculatePAYE(rates *taxrates.RateTable, in PAYEInput) (PAYEResult, error) {
	return calculatePAYE(rates, NewFlatRatePAYE(rates), in)
}

func calculatePAYE(rates *taxrates.RateTable, strategy TaxCalculator, in PAYEInput) (PAYEResult, error) {
	if err := in.Validate(); err != nil {
		return PAYEResult{}, err
	}

	annualIncome := float64(in.MonthlyIncome * 12)

	personalAllowance := rates.PAYE.PersonalAllowance
	if in.PersonalAllowance != nil {
		personalAllowance = *in.PersonalAllowance
	}
	var otherDeductions float64
	if in.OtherDeductions != nil {
		otherDeductions = *in.OtherDeductions
	}

	taxableIncome := max(0, annualIncome-personalAllowance-otherDeductions)
	tax := strategy.Compute(taxableIncome)

	res := PAYEResult{
		MonthlyIncome:     in.MonthlyIncome,
		AnnualIncome:      annualIncome,
		PersonalAllowance: personalAllowance,
		TaxableIncome:     taxableIncome,
		TotalTax:          tax.TotalAnnualTax,
		MonthlyTax:        tax.MonthlyTax,
		NetIncome:         in.MonthlyIncome - tax.MonthlyTax,
		EffectiveRate:     percentOf(tax.TotalAnnualTax, annualIncome),
	}
	if err := checkDerived("monthlyIncome", res.AnnualIncome, res.TaxableIncome, res.TotalTax, res.MonthlyTax, res.NetIncome, res.EffectiveRate); err != nil {
		return PAYEResult{}, err
	}
	return res, nil
}

// percentOf returns part/whole×100, or 0 when whole is zero.
func percentOf(part, whole float64) float64 {
	if whole > 0 {
		return float64(part/whole) * 100
	}
	return 0
}
