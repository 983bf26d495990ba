package taxcalc

import (
	"go-taxcalc/internal/taxrates"
)

type VATInput struct {
	Amount      float64 `json:"amount"`
	IncludesVAT bool    `json:"includesVAT"`
}

type VATResult struct {
	Amount          float64 `json:"amount"`
	VATAmount       float64 `json:"vatAmount"`
	TotalWithVAT    float64 `json:"totalWithVAT"`
	TotalWithoutVAT float64 `json:"totalWithoutVAT"`
	VATRate         float64 `json:"vatRate"` // percent
}

func (in VATInput) Validate() error {
	return checkAmount("amount", in.Amount)
}

// CalculateVAT either extracts VAT from an inclusive total or adds it to a
// base amount. Values are returned unrounded so that adding then
// extracting recovers the base to floating-point precision.
func CalculateVAT(rates *taxrates.RateTable, in VATInput) (VATResult, error) {
	if err := in.Validate(); err != nil {
		return VATResult{}, err
	}

	rate := rates.VAT.Rate
	res := VATResult{
		Amount:  in.Amount,
		VATRate: float64(rate * 100),
	}

	if in.IncludesVAT {
		res.TotalWithVAT = in.Amount
		res.TotalWithoutVAT = in.Amount / (1 + rate)
		res.VATAmount = in.Amount - res.TotalWithoutVAT
	} else {
		res.TotalWithoutVAT = in.Amount
		res.VATAmount = float64(in.Amount * rate)
		res.TotalWithVAT = in.Amount + res.VATAmount
	}

	if err := checkDerived("amount", res.VATAmount, res.TotalWithVAT, res.TotalWithoutVAT); err != nil {
		return VATResult{}, err
	}
	return res, nil
}
