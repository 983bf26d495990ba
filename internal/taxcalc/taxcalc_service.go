package taxcalc

import (
	"math"

	"go-taxcalc/internal/taxrates"
)

//go:generate mockgen -source=taxcalc_service.go -destination=mock/taxcalc_service_mock.go -package=mock
type Service interface {
	PAYE(in PAYEInput) (PAYEResult, error)
	VAT(in VATInput) (VATResult, error)
	NIS(in NISInput) (NISResult, error)
	FullSalary(in SalaryInput) (SalaryResult, error)
	Rates() TaxRatesResponse
}

// service binds the calculators to one rate table. It holds no mutable state
// and is safe for concurrent use.
type service struct {
	rates       *taxrates.RateTable
	flat        TaxCalculator
	progressive TaxCalculator
}

// NewService panics on a nil table; rates come from taxrates.Load, which
// already refuses incomplete configuration.
func NewService(rates *taxrates.RateTable) Service {
	if rates == nil {
		panic("taxcalc: nil rate table")
	}
	return &service{
		rates:       rates,
		flat:        NewFlatRatePAYE(rates),
		progressive: NewProgressivePAYE(rates),
	}
}

func (s *service) PAYE(in PAYEInput) (PAYEResult, error) {
	return calculatePAYE(s.rates, s.flat, in)
}

func (s *service) VAT(in VATInput) (VATResult, error) {
	return CalculateVAT(s.rates, in)
}

func (s *service) NIS(in NISInput) (NISResult, error) {
	return CalculateNIS(s.rates, in)
}

func (s *service) FullSalary(in SalaryInput) (SalaryResult, error) {
	return calculateFullSalary(s.rates, s.progressive, in)
}

func (s *service) Rates() TaxRatesResponse {
	r := s.rates
	allowances := make(map[string]float64, len(taxrates.QualificationLevels()))
	for level, v := range r.Salary.QualificationAllowances() {
		allowances[string(level)] = v
	}

	return TaxRatesResponse{
		Version: r.Version,
		PAYE: PAYERatesResponse{
			FirstBracketRate:      displayPercent(r.PAYE.FirstBracketRate),
			SecondBracketRate:     displayPercent(r.PAYE.SecondBracketRate),
			FirstBracketThreshold: r.PAYE.FirstBracketThreshold,
			PersonalAllowance:     r.PAYE.PersonalAllowance,
			Rate:                  displayPercent(r.PAYE.Rate),
		},
		VAT: VATRatesResponse{
			Rate: displayPercent(r.VAT.Rate),
		},
		NIS: NISRatesResponse{
			EmployeeRate:   displayPercent(r.NIS.EmployeeRate),
			EmployerRate:   displayPercent(r.NIS.EmployerRate),
			MonthlyCeiling: r.NIS.MonthlyCeiling,
		},
		Salary: SalaryRatesResponse{
			GratuityRate:            displayPercent(r.Salary.GratuityRate),
			QualificationAllowances: allowances,
			ChildDeductionAmount:    r.Salary.ChildDeductionAmount,
			MaxChildDeductions:      r.Salary.MaxChildDeductions,
		},
	}
}

// displayPercent is for the rate summary only; calculations never round.
func displayPercent(rate float64) float64 {
	return math.Round(rate*100*1e6) / 1e6
}
