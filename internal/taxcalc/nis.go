package taxcalc

import (
	taxcalcerrors "go-taxcalc/internal/taxcalc/errors"
	"go-taxcalc/internal/taxrates"
)

type ContributionType string

const (
	ContributionEmployee ContributionType = "employee"
	ContributionEmployer ContributionType = "employer"
	ContributionBoth     ContributionType = "both"
)

func (c ContributionType) Valid() bool {
	switch c {
	case ContributionEmployee, ContributionEmployer, ContributionBoth:
		return true
	}
	return false
}

type NISInput struct {
	MonthlyIncome    float64          `json:"monthlyIncome"`
	ContributionType ContributionType `json:"contributionType"`
}

type NISResult struct {
	MonthlyIncome        float64 `json:"monthlyIncome"`
	CappedIncome         float64 `json:"cappedIncome"`
	EmployeeContribution float64 `json:"employeeContribution"`
	EmployerContribution float64 `json:"employerContribution"`
	TotalContribution    float64 `json:"totalContribution"`
	EmployeeRate         float64 `json:"employeeRate"` // percent
	EmployerRate         float64 `json:"employerRate"` // percent
	Ceiling              float64 `json:"ceiling"`
}

func (in NISInput) Validate() error {
	if err := checkAmount("monthlyIncome", in.MonthlyIncome); err != nil {
		return err
	}
	if !in.ContributionType.Valid() {
		return invalid(
			"contributionType",
			"unsupported contribution type "+quote(string(in.ContributionType)),
			"oneof",
			taxcalcerrors.ErrInvalidContributionType,
		)
	}
	return nil
}

// nisContributions applies the monthly ceiling; income above it attracts no
// further contribution.
func nisContributions(rates *taxrates.RateTable, monthlyIncome float64) (capped, employee, employer float64) {
	capped = min(monthlyIncome, rates.NIS.MonthlyCeiling)
	employee = float64(capped * rates.NIS.EmployeeRate)
	employer = float64(capped * rates.NIS.EmployerRate)
	return capped, employee, employer
}

func CalculateNIS(rates *taxrates.RateTable, in NISInput) (NISResult, error) {
	if err := in.Validate(); err != nil {
		return NISResult{}, err
	}

	capped, employee, employer := nisContributions(rates, in.MonthlyIncome)
	switch in.ContributionType {
	case ContributionEmployee:
		employer = 0
	case ContributionEmployer:
		employee = 0
	}

	if err := checkDerived("monthlyIncome", capped, employee, employer, employee+employer); err != nil {
		return NISResult{}, err
	}

	return NISResult{
		MonthlyIncome:        in.MonthlyIncome,
		CappedIncome:         capped,
		EmployeeContribution: employee,
		EmployerContribution: employer,
		TotalContribution:    employee + employer,
		EmployeeRate:         float64(rates.NIS.EmployeeRate * 100),
		EmployerRate:         float64(rates.NIS.EmployerRate * 100),
		Ceiling:              rates.NIS.MonthlyCeiling,
	}, nil
}
