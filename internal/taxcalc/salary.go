package taxcalc

import (
	"strconv"

	taxcalcerrors "go-taxcalc/internal/taxcalc/errors"
	"go-taxcalc/internal/taxrates"
)

type SalaryInput struct {
	GrossSalary        float64                     `json:"grossSalary"`
	Frequency          PayFrequency                `json:"frequency"`
	IncludeGratuity    bool                        `json:"includeGratuity"`
	Month              *int                        `json:"month,omitempty"` // informational only
	QualificationLevel taxrates.QualificationLevel `json:"qualificationLevel,omitempty"`
	NumberOfChildren   int                         `json:"numberOfChildren,omitempty"`
	OtherDeductions    float64                     `json:"otherDeductions,omitempty"` // monthly
}

type SalaryDeductions struct {
	PersonalAllowance      float64 `json:"personalAllowance"`
	QualificationAllowance float64 `json:"qualificationAllowance"`
	ChildDeduction         float64 `json:"childDeduction"`
	OtherDeductions        float64 `json:"otherDeductions"` // annualised
	TotalDeductions        float64 `json:"totalDeductions"`
}

type SalaryNIS struct {
	EmployeeMonthly float64 `json:"employeeMonthly"`
	EmployerMonthly float64 `json:"employerMonthly"`
	CappedIncome    float64 `json:"cappedIncome"`
	Ceiling         float64 `json:"ceiling"`
}

type Gratuity struct {
	Included      bool    `json:"included"`
	MonthlyAmount float64 `json:"monthlyAmount"`
}

type NetPay struct {
	Monthly float64 `json:"monthly"`
}

type EffectiveRates struct {
	TaxRate float64 `json:"taxRate"`
}

// SalaryResult exposes every intermediate figure so the breakdown can be
// rendered line by line.
type SalaryResult struct {
	GrossMonthly   float64          `json:"grossMonthly"`
	GrossAnnual    float64          `json:"grossAnnual"`
	Deductions     SalaryDeductions `json:"deductions"`
	TaxableIncome  float64          `json:"taxableIncome"`
	Tax            TaxBreakdown     `json:"tax"`
	NIS            SalaryNIS        `json:"nis"`
	Gratuity       Gratuity         `json:"gratuity"`
	NetPay         NetPay           `json:"netPay"`
	EffectiveRates EffectiveRates   `json:"effectiveRates"`
}

func (in SalaryInput) Validate() error {
	if err := checkAmount("grossSalary", in.GrossSalary); err != nil {
		return err
	}
	if !in.Frequency.Valid() {
		return invalid("frequency", "unsupported pay frequency "+quote(string(in.Frequency)), "oneof", taxcalcerrors.ErrInvalidFrequency)
	}
	if in.Month != nil && (*in.Month < 1 || *in.Month > 12) {
		return invalid("month", "month "+strconv.Itoa(*in.Month)+" is outside 1-12", "range", taxcalcerrors.ErrInvalidMonth)
	}
	if in.QualificationLevel != "" && !in.QualificationLevel.Valid() {
		return invalid(
			"qualificationLevel",
			"unsupported qualification level "+quote(string(in.QualificationLevel)),
			"oneof",
			taxcalcerrors.ErrInvalidQualificationLevel,
		)
	}
	return checkAmount("otherDeductions", in.OtherDeductions)
}

// CalculateFullSalary produces the complete monthly payroll breakdown using
// progressive PAYE.
func CalculateFullSalary(rates *taxrates.RateTable, in SalaryInput) (SalaryResult, error) {
	return calculateFullSalary(rates, NewProgressivePAYE(rates), in)
}

// Each step feeds the next; reordering them changes results.
func calculateFullSalary(rates *taxrates.RateTable, strategy TaxCalculator, in SalaryInput) (SalaryResult, error) {
	if err := in.Validate(); err != nil {
		return SalaryResult{}, err
	}

	// 1. normalise
	grossMonthly, err := ToMonthly(in.GrossSalary, in.Frequency)
	if err != nil {
		return SalaryResult{}, err
	}
	grossAnnual := float64(grossMonthly * 12)
	if err := checkDerived("grossSalary", grossMonthly, grossAnnual); err != nil {
		return SalaryResult{}, err
	}

	// 2. deductions
	level := in.QualificationLevel
	if level == "" {
		level = taxrates.QualificationNone
	}
	qualificationAllowance, ok := rates.Salary.QualificationAllowance(level)
	if !ok {
		return SalaryResult{}, invalid("qualificationLevel", "no allowance configured for "+quote(string(level)), "oneof", taxcalcerrors.ErrInvalidQualificationLevel)
	}
	children := min(max(in.NumberOfChildren, 0), rates.Salary.MaxChildDeductions)

	deductions := SalaryDeductions{
		PersonalAllowance:      rates.PAYE.PersonalAllowance,
		QualificationAllowance: qualificationAllowance,
		ChildDeduction:         float64(float64(children) * rates.Salary.ChildDeductionAmount),
		OtherDeductions:        float64(in.OtherDeductions * 12),
	}
	deductions.TotalDeductions = deductions.PersonalAllowance +
		deductions.QualificationAllowance +
		deductions.ChildDeduction +
		deductions.OtherDeductions
	if err := checkDerived("otherDeductions", deductions.OtherDeductions, deductions.TotalDeductions); err != nil {
		return SalaryResult{}, err
	}

	// 3-4. taxable income and bracket split
	taxableIncome := max(0, grossAnnual-deductions.TotalDeductions)
	tax := strategy.Compute(taxableIncome)

	// 5. NIS is based on gross pay, not taxable income
	capped, employeeNIS, employerNIS := nisContributions(rates, grossMonthly)

	// 6. gratuity is neither taxed nor NIS-able
	var gratuity float64
	if in.IncludeGratuity {
		gratuity = float64(grossMonthly * rates.Salary.GratuityRate)
	}

	// 7-8.
	net := grossMonthly - tax.MonthlyTax - employeeNIS + gratuity

	effective := percentOf(tax.TotalAnnualTax, grossAnnual)
	if err := checkDerived("grossSalary", tax.TotalAnnualTax, tax.MonthlyTax, employeeNIS, employerNIS, gratuity, net, effective); err != nil {
		return SalaryResult{}, err
	}

	return SalaryResult{
		GrossMonthly:  grossMonthly,
		GrossAnnual:   grossAnnual,
		Deductions:    deductions,
		TaxableIncome: taxableIncome,
		Tax:           tax,
		NIS: SalaryNIS{
			EmployeeMonthly: employeeNIS,
			EmployerMonthly: employerNIS,
			CappedIncome:    capped,
			Ceiling:         rates.NIS.MonthlyCeiling,
		},
		Gratuity: Gratuity{
			Included:      in.IncludeGratuity,
			MonthlyAmount: gratuity,
		},
		NetPay:         NetPay{Monthly: net},
		EffectiveRates: EffectiveRates{TaxRate: effective},
	}, nil
}
