package taxcalc

import (
	"go-taxcalc/internal/taxrates"
)

// Request DTOs only enforce the JSON shape; value rules (non-negative,
// finite, known enum) are owned by each input's Validate.

type CalculatePAYERequest struct {
	MonthlyIncome     *float64 `json:"monthlyIncome" binding:"required"`
	PersonalAllowance *float64 `json:"personalAllowance"`
	OtherDeductions   *float64 `json:"otherDeductions"`
}

func (r CalculatePAYERequest) Input() PAYEInput {
	return PAYEInput{
		MonthlyIncome:     *r.MonthlyIncome,
		PersonalAllowance: r.PersonalAllowance,
		OtherDeductions:   r.OtherDeductions,
	}
}

type CalculateVATRequest struct {
	Amount      *float64 `json:"amount" binding:"required"`
	IncludesVAT *bool    `json:"includesVAT" binding:"required"`
}

func (r CalculateVATRequest) Input() VATInput {
	return VATInput{Amount: *r.Amount, IncludesVAT: *r.IncludesVAT}
}

type CalculateNISRequest struct {
	MonthlyIncome    *float64 `json:"monthlyIncome" binding:"required"`
	ContributionType string   `json:"contributionType" binding:"required"`
}

func (r CalculateNISRequest) Input() NISInput {
	return NISInput{
		MonthlyIncome:    *r.MonthlyIncome,
		ContributionType: ContributionType(r.ContributionType),
	}
}

type CalculateSalaryRequest struct {
	GrossSalary        *float64 `json:"grossSalary" binding:"required"`
	Frequency          string   `json:"frequency" binding:"required"`
	IncludeGratuity    *bool    `json:"includeGratuity" binding:"required"`
	Month              *int     `json:"month"`
	QualificationLevel string   `json:"qualificationLevel"`
	NumberOfChildren   *int     `json:"numberOfChildren"`
	OtherDeductions    *float64 `json:"otherDeductions"`
}

func (r CalculateSalaryRequest) Input() SalaryInput {
	in := SalaryInput{
		GrossSalary:        *r.GrossSalary,
		Frequency:          PayFrequency(r.Frequency),
		IncludeGratuity:    *r.IncludeGratuity,
		Month:              r.Month,
		QualificationLevel: taxrates.QualificationLevel(r.QualificationLevel),
	}
	if r.NumberOfChildren != nil {
		in.NumberOfChildren = *r.NumberOfChildren
	}
	if r.OtherDeductions != nil {
		in.OtherDeductions = *r.OtherDeductions
	}
	return in
}

// TaxRatesResponse summarises the active rate table. Rates are percentages.
type TaxRatesResponse struct {
	Version string              `json:"version"`
	PAYE    PAYERatesResponse   `json:"paye"`
	VAT     VATRatesResponse    `json:"vat"`
	NIS     NISRatesResponse    `json:"nis"`
	Salary  SalaryRatesResponse `json:"salary"`
}

type PAYERatesResponse struct {
	FirstBracketRate      float64 `json:"firstBracketRate"`
	SecondBracketRate     float64 `json:"secondBracketRate"`
	FirstBracketThreshold float64 `json:"firstBracketThreshold"`
	PersonalAllowance     float64 `json:"personalAllowance"`
	Rate                  float64 `json:"rate"`
}

type VATRatesResponse struct {
	Rate float64 `json:"rate"`
}

type NISRatesResponse struct {
	EmployeeRate   float64 `json:"employeeRate"`
	EmployerRate   float64 `json:"employerRate"`
	MonthlyCeiling float64 `json:"monthlyCeiling"`
}

type SalaryRatesResponse struct {
	GratuityRate            float64            `json:"gratuityRate"`
	QualificationAllowances map[string]float64 `json:"qualificationAllowances"`
	ChildDeductionAmount    float64            `json:"childDeductionAmount"`
	MaxChildDeductions      int                `json:"maxChildDeductions"`
}
