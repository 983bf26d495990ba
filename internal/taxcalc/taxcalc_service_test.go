package taxcalc_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"go-taxcalc/internal/taxcalc"
	taxcalcerrors "go-taxcalc/internal/taxcalc/errors"
	"go-taxcalc/internal/taxrates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-6

func newService(t *testing.T) taxcalc.Service {
	t.Helper()
	return taxcalc.NewService(taxrates.Default())
}

func ptr[T any](v T) *T { return &v }

func requireValidationError(t *testing.T, err error, field string, sentinel error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel), "expected %v, got %v", sentinel, err)

	var vErr *taxcalc.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, field, vErr.Field)
}

func TestService_PAYE(t *testing.T) {
	svc := newService(t)

	t.Run("default allowance", func(t *testing.T) {
		res, err := svc.PAYE(taxcalc.PAYEInput{MonthlyIncome: 200_000})
		require.NoError(t, err)

		assert.Equal(t, 2_400_000.0, res.AnnualIncome)
		assert.Equal(t, 1_560_000.0, res.PersonalAllowance)
		assert.Equal(t, 840_000.0, res.TaxableIncome)
		assert.Equal(t, 210_000.0, res.TotalTax)
		assert.Equal(t, 17_500.0, res.MonthlyTax)
		assert.Equal(t, 182_500.0, res.NetIncome)
		assert.InDelta(t, 8.75, res.EffectiveRate, delta)
	})

	t.Run("income below allowance", func(t *testing.T) {
		res, err := svc.PAYE(taxcalc.PAYEInput{MonthlyIncome: 100_000})
		require.NoError(t, err)

		assert.Zero(t, res.TaxableIncome)
		assert.Zero(t, res.TotalTax)
		assert.Equal(t, 100_000.0, res.NetIncome)
	})

	t.Run("custom allowance and deductions", func(t *testing.T) {
		res, err := svc.PAYE(taxcalc.PAYEInput{
			MonthlyIncome:     200_000,
			PersonalAllowance: ptr(1_000_000.0),
			OtherDeductions:   ptr(400_000.0),
		})
		require.NoError(t, err)

		assert.Equal(t, 1_000_000.0, res.PersonalAllowance)
		assert.Equal(t, 1_000_000.0, res.TaxableIncome)
		assert.Equal(t, 250_000.0, res.TotalTax)
	})

	t.Run("zero income", func(t *testing.T) {
		res, err := svc.PAYE(taxcalc.PAYEInput{MonthlyIncome: 0})
		require.NoError(t, err)

		assert.Zero(t, res.TotalTax)
		assert.Zero(t, res.EffectiveRate)
	})

	t.Run("uses flat rate even above the bracket threshold", func(t *testing.T) {
		res, err := svc.PAYE(taxcalc.PAYEInput{MonthlyIncome: 1_000_000})
		require.NoError(t, err)

		// 12,000,000 - 1,560,000 at 25%
		assert.Equal(t, 2_610_000.0, res.TotalTax)
	})

	t.Run("rejects negative income", func(t *testing.T) {
		_, err := svc.PAYE(taxcalc.PAYEInput{MonthlyIncome: -1})
		requireValidationError(t, err, "monthlyIncome", taxcalcerrors.ErrNegativeValue)
	})

	t.Run("rejects NaN allowance", func(t *testing.T) {
		_, err := svc.PAYE(taxcalc.PAYEInput{MonthlyIncome: 1, PersonalAllowance: ptr(math.NaN())})
		requireValidationError(t, err, "personalAllowance", taxcalcerrors.ErrNonFiniteValue)
	})

	t.Run("rejects infinite deductions", func(t *testing.T) {
		_, err := svc.PAYE(taxcalc.PAYEInput{MonthlyIncome: 1, OtherDeductions: ptr(math.Inf(1))})
		requireValidationError(t, err, "otherDeductions", taxcalcerrors.ErrNonFiniteValue)
	})

	t.Run("rejects income whose annual figure overflows", func(t *testing.T) {
		res, err := svc.PAYE(taxcalc.PAYEInput{MonthlyIncome: math.MaxFloat64})
		requireValidationError(t, err, "monthlyIncome", taxcalcerrors.ErrNonFiniteValue)
		assert.Equal(t, taxcalc.PAYEResult{}, res)

		var vErr *taxcalc.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "max", vErr.Rule)
	})
}

func TestService_VAT(t *testing.T) {
	svc := newService(t)

	t.Run("exclusive", func(t *testing.T) {
		res, err := svc.VAT(taxcalc.VATInput{Amount: 1000, IncludesVAT: false})
		require.NoError(t, err)

		assert.InDelta(t, 140, res.VATAmount, delta)
		assert.InDelta(t, 1140, res.TotalWithVAT, delta)
		assert.Equal(t, 1000.0, res.TotalWithoutVAT)
		assert.InDelta(t, 14, res.VATRate, delta)
	})

	t.Run("inclusive", func(t *testing.T) {
		res, err := svc.VAT(taxcalc.VATInput{Amount: 1140, IncludesVAT: true})
		require.NoError(t, err)

		assert.Equal(t, 1140.0, res.TotalWithVAT)
		assert.InDelta(t, 1000, res.TotalWithoutVAT, delta)
		assert.InDelta(t, 140, res.VATAmount, delta)
	})

	t.Run("round trip", func(t *testing.T) {
		for _, amount := range []float64{0, 0.01, 1, 99.99, 1000, 123_456.78, 50_000_000} {
			added, err := svc.VAT(taxcalc.VATInput{Amount: amount})
			require.NoError(t, err)

			extracted, err := svc.VAT(taxcalc.VATInput{Amount: added.TotalWithVAT, IncludesVAT: true})
			require.NoError(t, err)

			assert.InDelta(t, amount, extracted.TotalWithoutVAT, math.Max(amount*1e-12, 1e-12), "amount %v", amount)
		}
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := svc.VAT(taxcalc.VATInput{Amount: -0.01})
		requireValidationError(t, err, "amount", taxcalcerrors.ErrNegativeValue)
	})

	t.Run("rejects amount whose total overflows", func(t *testing.T) {
		_, err := svc.VAT(taxcalc.VATInput{Amount: math.MaxFloat64})
		requireValidationError(t, err, "amount", taxcalcerrors.ErrNonFiniteValue)
	})

	t.Run("extracting from the largest amount stays finite", func(t *testing.T) {
		res, err := svc.VAT(taxcalc.VATInput{Amount: math.MaxFloat64, IncludesVAT: true})
		require.NoError(t, err)
		assert.False(t, math.IsInf(res.TotalWithoutVAT, 0))
	})
}

func TestService_NIS(t *testing.T) {
	svc := newService(t)

	t.Run("both below ceiling", func(t *testing.T) {
		res, err := svc.NIS(taxcalc.NISInput{MonthlyIncome: 200_000, ContributionType: taxcalc.ContributionBoth})
		require.NoError(t, err)

		assert.Equal(t, 200_000.0, res.CappedIncome)
		assert.InDelta(t, 11_200, res.EmployeeContribution, delta)
		assert.InDelta(t, 16_800, res.EmployerContribution, delta)
		assert.InDelta(t, 28_000, res.TotalContribution, delta)
		assert.InDelta(t, 5.6, res.EmployeeRate, delta)
		assert.InDelta(t, 8.4, res.EmployerRate, delta)
		assert.Equal(t, 280_000.0, res.Ceiling)
	})

	t.Run("income above ceiling is capped", func(t *testing.T) {
		res, err := svc.NIS(taxcalc.NISInput{MonthlyIncome: 1_000_000, ContributionType: taxcalc.ContributionBoth})
		require.NoError(t, err)

		assert.Equal(t, 280_000.0, res.CappedIncome)
		assert.InDelta(t, 15_680, res.EmployeeContribution, delta)
		assert.InDelta(t, 23_520, res.EmployerContribution, delta)
	})

	t.Run("employee only", func(t *testing.T) {
		res, err := svc.NIS(taxcalc.NISInput{MonthlyIncome: 200_000, ContributionType: taxcalc.ContributionEmployee})
		require.NoError(t, err)

		assert.InDelta(t, 11_200, res.EmployeeContribution, delta)
		assert.Zero(t, res.EmployerContribution)
		assert.Equal(t, res.EmployeeContribution, res.TotalContribution)
	})

	t.Run("employer only", func(t *testing.T) {
		res, err := svc.NIS(taxcalc.NISInput{MonthlyIncome: 200_000, ContributionType: taxcalc.ContributionEmployer})
		require.NoError(t, err)

		assert.Zero(t, res.EmployeeContribution)
		assert.InDelta(t, 16_800, res.EmployerContribution, delta)
	})

	t.Run("contributions never decrease and stop at the ceiling", func(t *testing.T) {
		var prev float64
		atCeiling, err := svc.NIS(taxcalc.NISInput{MonthlyIncome: 280_000, ContributionType: taxcalc.ContributionBoth})
		require.NoError(t, err)

		for income := 0.0; income <= 600_000; income += 10_000 {
			res, err := svc.NIS(taxcalc.NISInput{MonthlyIncome: income, ContributionType: taxcalc.ContributionBoth})
			require.NoError(t, err)

			assert.GreaterOrEqual(t, res.TotalContribution, prev)
			if income >= 280_000 {
				assert.Equal(t, atCeiling.TotalContribution, res.TotalContribution)
			}
			prev = res.TotalContribution
		}
	})

	t.Run("rejects unknown contribution type", func(t *testing.T) {
		_, err := svc.NIS(taxcalc.NISInput{MonthlyIncome: 1, ContributionType: "self"})
		requireValidationError(t, err, "contributionType", taxcalcerrors.ErrInvalidContributionType)
	})
}

func TestService_FullSalary(t *testing.T) {
	svc := newService(t)

	t.Run("first bracket only", func(t *testing.T) {
		res, err := svc.FullSalary(taxcalc.SalaryInput{GrossSalary: 300_000, Frequency: taxcalc.FrequencyMonthly})
		require.NoError(t, err)

		assert.Equal(t, 3_600_000.0, res.GrossAnnual)
		assert.Equal(t, 1_560_000.0, res.Deductions.TotalDeductions)
		assert.Equal(t, 2_040_000.0, res.TaxableIncome)
		assert.Equal(t, 510_000.0, res.Tax.TotalAnnualTax)
		assert.Equal(t, 42_500.0, res.Tax.MonthlyTax)
		assert.Zero(t, res.Tax.SecondBracketIncome)
		assert.InDelta(t, 15_680, res.NIS.EmployeeMonthly, delta)
		assert.InDelta(t, 241_820, res.NetPay.Monthly, delta)
		assert.InDelta(t, 14.1667, res.EffectiveRates.TaxRate, 1e-4)
		assert.False(t, res.Gratuity.Included)
		assert.Zero(t, res.Gratuity.MonthlyAmount)
	})

	t.Run("gratuity is added to net pay untaxed", func(t *testing.T) {
		res, err := svc.FullSalary(taxcalc.SalaryInput{GrossSalary: 300_000, Frequency: taxcalc.FrequencyMonthly, IncludeGratuity: true})
		require.NoError(t, err)

		assert.True(t, res.Gratuity.Included)
		assert.InDelta(t, 67_500, res.Gratuity.MonthlyAmount, delta)
		assert.Equal(t, 42_500.0, res.Tax.MonthlyTax)
		assert.InDelta(t, 309_320, res.NetPay.Monthly, delta)
	})

	t.Run("second bracket", func(t *testing.T) {
		res, err := svc.FullSalary(taxcalc.SalaryInput{GrossSalary: 500_000, Frequency: taxcalc.FrequencyMonthly})
		require.NoError(t, err)

		assert.Equal(t, 4_440_000.0, res.TaxableIncome)
		assert.Equal(t, 3_120_000.0, res.Tax.FirstBracketIncome)
		assert.Equal(t, 780_000.0, res.Tax.FirstBracketTax)
		assert.Equal(t, 1_320_000.0, res.Tax.SecondBracketIncome)
		assert.InDelta(t, 528_000, res.Tax.SecondBracketTax, delta)
		assert.InDelta(t, 1_308_000, res.Tax.TotalAnnualTax, delta)
	})

	t.Run("high income", func(t *testing.T) {
		res, err := svc.FullSalary(taxcalc.SalaryInput{GrossSalary: 1_000_000, Frequency: taxcalc.FrequencyMonthly})
		require.NoError(t, err)

		assert.InDelta(t, 3_708_000, res.Tax.TotalAnnualTax, delta)
		assert.InDelta(t, 309_000, res.Tax.MonthlyTax, delta)
		assert.Equal(t, 280_000.0, res.NIS.CappedIncome)
	})

	t.Run("qualification, children and gratuity", func(t *testing.T) {
		res, err := svc.FullSalary(taxcalc.SalaryInput{
			GrossSalary:        400_000,
			Frequency:          taxcalc.FrequencyMonthly,
			IncludeGratuity:    true,
			Month:              ptr(6),
			QualificationLevel: taxrates.QualificationBachelors,
			NumberOfChildren:   2,
		})
		require.NoError(t, err)

		assert.Equal(t, 150_000.0, res.Deductions.QualificationAllowance)
		assert.Equal(t, 240_000.0, res.Deductions.ChildDeduction)
		assert.Equal(t, 1_950_000.0, res.Deductions.TotalDeductions)
		assert.Equal(t, 2_850_000.0, res.TaxableIncome)
		assert.Equal(t, 712_500.0, res.Tax.FirstBracketTax)
		assert.Zero(t, res.Tax.SecondBracketTax)
		assert.Equal(t, 59_375.0, res.Tax.MonthlyTax)
		assert.InDelta(t, 15_680, res.NIS.EmployeeMonthly, delta)
		assert.InDelta(t, 23_520, res.NIS.EmployerMonthly, delta)
		assert.InDelta(t, 90_000, res.Gratuity.MonthlyAmount, delta)
		assert.InDelta(t, 414_945, res.NetPay.Monthly, delta)
		assert.InDelta(t, 14.84375, res.EffectiveRates.TaxRate, delta)
	})

	t.Run("qualification and children crossing into second bracket", func(t *testing.T) {
		res, err := svc.FullSalary(taxcalc.SalaryInput{
			GrossSalary:        500_000,
			Frequency:          taxcalc.FrequencyMonthly,
			QualificationLevel: taxrates.QualificationBachelors,
			NumberOfChildren:   2,
		})
		require.NoError(t, err)

		assert.Equal(t, 4_050_000.0, res.TaxableIncome)
		assert.Equal(t, 780_000.0, res.Tax.FirstBracketTax)
		assert.InDelta(t, 372_000, res.Tax.SecondBracketTax, delta)
		assert.InDelta(t, 1_152_000, res.Tax.TotalAnnualTax, delta)
		assert.InDelta(t, 96_000, res.Tax.MonthlyTax, delta)
	})

	t.Run("all deductions", func(t *testing.T) {
		res, err := svc.FullSalary(taxcalc.SalaryInput{
			GrossSalary:        500_000,
			Frequency:          taxcalc.FrequencyMonthly,
			QualificationLevel: taxrates.QualificationDoctorate,
			NumberOfChildren:   4,
			OtherDeductions:    10_000,
		})
		require.NoError(t, err)

		assert.Equal(t, 250_000.0, res.Deductions.QualificationAllowance)
		assert.Equal(t, 480_000.0, res.Deductions.ChildDeduction)
		assert.Equal(t, 120_000.0, res.Deductions.OtherDeductions)
		assert.Equal(t, 2_410_000.0, res.Deductions.TotalDeductions)
	})

	t.Run("children beyond the cap add nothing", func(t *testing.T) {
		base := taxcalc.SalaryInput{GrossSalary: 400_000, Frequency: taxcalc.FrequencyMonthly, NumberOfChildren: 4}
		capped, err := svc.FullSalary(base)
		require.NoError(t, err)

		for _, n := range []int{5, 7, 50} {
			in := base
			in.NumberOfChildren = n
			res, err := svc.FullSalary(in)
			require.NoError(t, err)
			assert.Equal(t, capped, res, "children %d", n)
		}
	})

	t.Run("negative children count as zero", func(t *testing.T) {
		res, err := svc.FullSalary(taxcalc.SalaryInput{GrossSalary: 400_000, Frequency: taxcalc.FrequencyMonthly, NumberOfChildren: -3})
		require.NoError(t, err)
		assert.Zero(t, res.Deductions.ChildDeduction)
	})

	t.Run("low income has no tax", func(t *testing.T) {
		res, err := svc.FullSalary(taxcalc.SalaryInput{GrossSalary: 100_000, Frequency: taxcalc.FrequencyMonthly})
		require.NoError(t, err)

		assert.Zero(t, res.TaxableIncome)
		assert.Zero(t, res.Tax.TotalAnnualTax)
		assert.InDelta(t, 94_400, res.NetPay.Monthly, delta)
	})

	t.Run("zero salary", func(t *testing.T) {
		res, err := svc.FullSalary(taxcalc.SalaryInput{GrossSalary: 0, Frequency: taxcalc.FrequencyMonthly})
		require.NoError(t, err)

		assert.Zero(t, res.NetPay.Monthly)
		assert.Zero(t, res.EffectiveRates.TaxRate)
	})

	t.Run("frequencies", func(t *testing.T) {
		cases := []struct {
			frequency taxcalc.PayFrequency
			gross     float64
			monthly   float64
		}{
			{taxcalc.FrequencyDaily, 10_000, 220_000},
			{taxcalc.FrequencyWeekly, 50_000, 216_500},
			{taxcalc.FrequencyFortnightly, 100_000, 217_000},
			{taxcalc.FrequencyMonthly, 300_000, 300_000},
			{taxcalc.FrequencyYearly, 3_600_000, 300_000},
		}
		for _, tc := range cases {
			t.Run(string(tc.frequency), func(t *testing.T) {
				res, err := svc.FullSalary(taxcalc.SalaryInput{GrossSalary: tc.gross, Frequency: tc.frequency})
				require.NoError(t, err)
				assert.InDelta(t, tc.monthly, res.GrossMonthly, delta)
			})
		}
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name     string
			in       taxcalc.SalaryInput
			field    string
			sentinel error
		}{
			{"negative salary", taxcalc.SalaryInput{GrossSalary: -1, Frequency: taxcalc.FrequencyMonthly}, "grossSalary", taxcalcerrors.ErrNegativeValue},
			{"infinite salary", taxcalc.SalaryInput{GrossSalary: math.Inf(1), Frequency: taxcalc.FrequencyMonthly}, "grossSalary", taxcalcerrors.ErrNonFiniteValue},
			{"unknown frequency", taxcalc.SalaryInput{GrossSalary: 1, Frequency: "hourly"}, "frequency", taxcalcerrors.ErrInvalidFrequency},
			{"empty frequency", taxcalc.SalaryInput{GrossSalary: 1}, "frequency", taxcalcerrors.ErrInvalidFrequency},
			{"month too high", taxcalc.SalaryInput{GrossSalary: 1, Frequency: taxcalc.FrequencyMonthly, Month: ptr(13)}, "month", taxcalcerrors.ErrInvalidMonth},
			{"month zero", taxcalc.SalaryInput{GrossSalary: 1, Frequency: taxcalc.FrequencyMonthly, Month: ptr(0)}, "month", taxcalcerrors.ErrInvalidMonth},
			{"unknown qualification", taxcalc.SalaryInput{GrossSalary: 1, Frequency: taxcalc.FrequencyMonthly, QualificationLevel: "PHD"}, "qualificationLevel", taxcalcerrors.ErrInvalidQualificationLevel},
			{"negative deductions", taxcalc.SalaryInput{GrossSalary: 1, Frequency: taxcalc.FrequencyMonthly, OtherDeductions: -5}, "otherDeductions", taxcalcerrors.ErrNegativeValue},
			{"daily salary overflows monthly", taxcalc.SalaryInput{GrossSalary: 1e307, Frequency: taxcalc.FrequencyDaily}, "grossSalary", taxcalcerrors.ErrNonFiniteValue},
			{"monthly salary overflows annual", taxcalc.SalaryInput{GrossSalary: math.MaxFloat64, Frequency: taxcalc.FrequencyMonthly}, "grossSalary", taxcalcerrors.ErrNonFiniteValue},
			{"deductions overflow annual", taxcalc.SalaryInput{GrossSalary: 1, Frequency: taxcalc.FrequencyMonthly, OtherDeductions: math.MaxFloat64}, "otherDeductions", taxcalcerrors.ErrNonFiniteValue},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.FullSalary(tc.in)
				requireValidationError(t, err, tc.field, tc.sentinel)
			})
		}
	})

	t.Run("identical inputs give identical results", func(t *testing.T) {
		in := taxcalc.SalaryInput{
			GrossSalary:        123_456.78,
			Frequency:          taxcalc.FrequencyWeekly,
			IncludeGratuity:    true,
			QualificationLevel: taxrates.QualificationMasters,
			NumberOfChildren:   3,
			OtherDeductions:    2_500,
		}
		first, err := svc.FullSalary(in)
		require.NoError(t, err)
		second, err := svc.FullSalary(in)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("safe for concurrent use", func(t *testing.T) {
		in := taxcalc.SalaryInput{GrossSalary: 750_000, Frequency: taxcalc.FrequencyMonthly, IncludeGratuity: true}
		want, err := svc.FullSalary(in)
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]taxcalc.SalaryResult, 64)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = svc.FullSalary(in)
			}(i)
		}
		wg.Wait()

		for _, got := range results {
			assert.Equal(t, want, got)
		}
	})
}

func TestProgressivePAYE_BracketBoundary(t *testing.T) {
	p := taxcalc.NewProgressivePAYE(taxrates.Default())

	at := p.Compute(3_120_000)
	assert.Equal(t, 3_120_000.0, at.FirstBracketIncome)
	assert.Equal(t, 780_000.0, at.FirstBracketTax)
	assert.Zero(t, at.SecondBracketIncome)
	assert.Zero(t, at.SecondBracketTax)

	above := p.Compute(3_120_001)
	assert.Equal(t, 3_120_000.0, above.FirstBracketIncome)
	assert.Equal(t, 780_000.0, above.FirstBracketTax)
	assert.Equal(t, 1.0, above.SecondBracketIncome)
	assert.InDelta(t, 0.4, above.SecondBracketTax, 1e-9)
	assert.InDelta(t, 780_000.4, above.TotalAnnualTax, 1e-6)
}

func TestFlatRatePAYE_Compute(t *testing.T) {
	p := taxcalc.NewFlatRatePAYE(taxrates.Default())

	res := p.Compute(10_000_000)
	assert.Equal(t, "flat", p.Name())
	assert.Equal(t, 2_500_000.0, res.TotalAnnualTax)
	assert.Zero(t, res.SecondBracketIncome)
}

func TestToMonthly(t *testing.T) {
	for _, f := range taxcalc.PayFrequencies() {
		assert.True(t, f.Valid(), string(f))
	}

	monthly, err := taxcalc.ToMonthly(60_000, taxcalc.FrequencyYearly)
	require.NoError(t, err)
	assert.Equal(t, 5_000.0, monthly)

	_, err = taxcalc.ToMonthly(1, "quarterly")
	requireValidationError(t, err, "frequency", taxcalcerrors.ErrInvalidFrequency)
}

func TestService_Rates(t *testing.T) {
	rates := newService(t).Rates()

	assert.Equal(t, "GY-2025", rates.Version)
	assert.Equal(t, 25.0, rates.PAYE.FirstBracketRate)
	assert.Equal(t, 40.0, rates.PAYE.SecondBracketRate)
	assert.Equal(t, 25.0, rates.PAYE.Rate)
	assert.Equal(t, 14.0, rates.VAT.Rate)
	assert.Equal(t, 5.6, rates.NIS.EmployeeRate)
	assert.Equal(t, 8.4, rates.NIS.EmployerRate)
	assert.Equal(t, 22.5, rates.Salary.GratuityRate)
	assert.Equal(t, 150_000.0, rates.Salary.QualificationAllowances["BACHELORS"])
	assert.Len(t, rates.Salary.QualificationAllowances, 6)
}
