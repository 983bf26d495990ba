// Package taxrates holds the immutable, versioned constant set read by every
// calculator in go-taxcalc.
package taxrates

import "maps"

type QualificationLevel string

const (
	QualificationNone        QualificationLevel = "NONE"
	QualificationCertificate QualificationLevel = "CERTIFICATE"
	QualificationDiploma     QualificationLevel = "DIPLOMA"
	QualificationBachelors   QualificationLevel = "BACHELORS"
	QualificationMasters     QualificationLevel = "MASTERS"
	QualificationDoctorate   QualificationLevel = "DOCTORATE"
)

// QualificationLevels lists every level in ascending order.
func QualificationLevels() []QualificationLevel {
	return []QualificationLevel{
		QualificationNone,
		QualificationCertificate,
		QualificationDiploma,
		QualificationBachelors,
		QualificationMasters,
		QualificationDoctorate,
	}
}

func (l QualificationLevel) Valid() bool {
	switch l {
	case QualificationNone, QualificationCertificate, QualificationDiploma,
		QualificationBachelors, QualificationMasters, QualificationDoctorate:
		return true
	}
	return false
}

// PAYERates carries both PAYE modes. Rate is the legacy flat rate; the
// bracket fields drive the progressive calculation.
type PAYERates struct {
	FirstBracketRate      float64
	SecondBracketRate     float64
	FirstBracketThreshold float64 // annual
	PersonalAllowance     float64 // annual
	Rate                  float64
}

type VATRates struct {
	Rate float64
}

type NISRates struct {
	EmployeeRate   float64
	EmployerRate   float64
	MonthlyCeiling float64
}

type SalaryRates struct {
	GratuityRate         float64
	ChildDeductionAmount float64 // annual, per child
	MaxChildDeductions   int

	qualificationAllowances map[QualificationLevel]float64 // annual
}

// QualificationAllowance returns the annual allowance for level.
func (s SalaryRates) QualificationAllowance(level QualificationLevel) (float64, bool) {
	v, ok := s.qualificationAllowances[level]
	return v, ok
}

// QualificationAllowances returns a copy of the allowance table.
func (s SalaryRates) QualificationAllowances() map[QualificationLevel]float64 {
	return maps.Clone(s.qualificationAllowances)
}

// RateTable is built once by Load or Parse and is read-only afterwards, so
// a single instance can be shared by any number of goroutines.
type RateTable struct {
	Version string
	PAYE    PAYERates
	VAT     VATRates
	NIS     NISRates
	Salary  SalaryRates
}
