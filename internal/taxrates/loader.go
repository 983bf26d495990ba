package taxrates

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_rates.yaml
var defaultRatesYAML []byte

// rateFile mirrors the YAML layout. Pointers distinguish "absent" from zero,
// since a zero allowance is legal but a forgotten key is not.
type rateFile struct {
	Version string `yaml:"version"`
	PAYE    struct {
		FirstBracketRate      *float64 `yaml:"first_bracket_rate"`
		SecondBracketRate     *float64 `yaml:"second_bracket_rate"`
		FirstBracketThreshold *float64 `yaml:"first_bracket_threshold"`
		PersonalAllowance     *float64 `yaml:"personal_allowance"`
		Rate                  *float64 `yaml:"rate"`
	} `yaml:"paye"`
	VAT struct {
		Rate *float64 `yaml:"rate"`
	} `yaml:"vat"`
	NIS struct {
		EmployeeRate   *float64 `yaml:"employee_rate"`
		EmployerRate   *float64 `yaml:"employer_rate"`
		MonthlyCeiling *float64 `yaml:"monthly_ceiling"`
	} `yaml:"nis"`
	Salary struct {
		GratuityRate            *float64            `yaml:"gratuity_rate"`
		QualificationAllowances map[string]*float64 `yaml:"qualification_allowances"`
		ChildDeductionAmount    *float64            `yaml:"child_deduction_amount"`
		MaxChildDeductions      *int                `yaml:"max_child_deductions"`
	} `yaml:"salary"`
}

// Load reads the rate table from path, or the embedded GY-2025 table when
// path is empty.
func Load(path string) (*RateTable, error) {
	if path == "" {
		return Parse(defaultRatesYAML)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Key: path, Reason: "cannot read rate file", Err: err}
	}
	return Parse(data)
}

// Default returns a freshly parsed copy of the embedded rate table.
func Default() *RateTable {
	t, err := Parse(defaultRatesYAML)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse decodes and validates a YAML rate table. Unknown keys are rejected
// so a misspelt constant cannot silently fall back to its zero value.
func Parse(data []byte) (*RateTable, error) {
	var f rateFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ConfigurationError{Reason: "rate file is empty"}
		}
		return nil, &ConfigurationError{Reason: "invalid rate file", Err: err}
	}

	return f.build()
}

func (f *rateFile) build() (*RateTable, error) {
	if f.Version == "" {
		return nil, missing("version")
	}

	t := &RateTable{Version: f.Version}
	var err error

	if t.PAYE.FirstBracketRate, err = rate("paye.first_bracket_rate", f.PAYE.FirstBracketRate); err != nil {
		return nil, err
	}
	if t.PAYE.SecondBracketRate, err = rate("paye.second_bracket_rate", f.PAYE.SecondBracketRate); err != nil {
		return nil, err
	}
	if t.PAYE.FirstBracketThreshold, err = amount("paye.first_bracket_threshold", f.PAYE.FirstBracketThreshold); err != nil {
		return nil, err
	}
	if t.PAYE.PersonalAllowance, err = amount("paye.personal_allowance", f.PAYE.PersonalAllowance); err != nil {
		return nil, err
	}
	if t.PAYE.Rate, err = rate("paye.rate", f.PAYE.Rate); err != nil {
		return nil, err
	}

	if t.VAT.Rate, err = rate("vat.rate", f.VAT.Rate); err != nil {
		return nil, err
	}

	if t.NIS.EmployeeRate, err = rate("nis.employee_rate", f.NIS.EmployeeRate); err != nil {
		return nil, err
	}
	if t.NIS.EmployerRate, err = rate("nis.employer_rate", f.NIS.EmployerRate); err != nil {
		return nil, err
	}
	if t.NIS.MonthlyCeiling, err = amount("nis.monthly_ceiling", f.NIS.MonthlyCeiling); err != nil {
		return nil, err
	}

	if t.Salary.GratuityRate, err = rate("salary.gratuity_rate", f.Salary.GratuityRate); err != nil {
		return nil, err
	}
	if t.Salary.ChildDeductionAmount, err = amount("salary.child_deduction_amount", f.Salary.ChildDeductionAmount); err != nil {
		return nil, err
	}
	if f.Salary.MaxChildDeductions == nil {
		return nil, missing("salary.max_child_deductions")
	}
	if *f.Salary.MaxChildDeductions < 0 {
		return nil, &ConfigurationError{Key: "salary.max_child_deductions", Reason: "must not be negative"}
	}
	t.Salary.MaxChildDeductions = *f.Salary.MaxChildDeductions

	allowances := make(map[QualificationLevel]float64, len(QualificationLevels()))
	for name := range f.Salary.QualificationAllowances {
		if !QualificationLevel(name).Valid() {
			return nil, &ConfigurationError{
				Key:    "salary.qualification_allowances." + name,
				Reason: "unknown qualification level",
			}
		}
	}
	for _, level := range QualificationLevels() {
		key := "salary.qualification_allowances." + string(level)
		v, err := amount(key, f.Salary.QualificationAllowances[string(level)])
		if err != nil {
			return nil, err
		}
		allowances[level] = v
	}
	t.Salary.qualificationAllowances = allowances

	return t, nil
}

func rate(key string, v *float64) (float64, error) {
	if v == nil {
		return 0, missing(key)
	}
	if math.IsNaN(*v) || *v < 0 || *v > 1 {
		return 0, &ConfigurationError{Key: key, Reason: fmt.Sprintf("rate %v is outside [0,1]", *v)}
	}
	return *v, nil
}

func amount(key string, v *float64) (float64, error) {
	if v == nil {
		return 0, missing(key)
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return 0, &ConfigurationError{Key: key, Reason: fmt.Sprintf("amount %v must be a non-negative number", *v)}
	}
	return *v, nil
}
