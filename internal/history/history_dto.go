package history

import (
	"encoding/json"
	"time"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type SaveCalculationRequest struct {
	CalculationType string          `json:"calculationType" binding:"required"`
	InputData       json.RawMessage `json:"inputData" binding:"required"`
	Result          json.RawMessage `json:"result" binding:"required"`
}

type ListHistoryRequest struct {
	CalculationType string `form:"calculation_type"`
	Limit           int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type CalculationResponse struct {
	ID              string          `json:"id"`
	CalculationType string          `json:"calculationType"`
	InputData       json.RawMessage `json:"inputData"`
	Result          json.RawMessage `json:"result"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func mapToResponse(c Calculation) CalculationResponse {
	return CalculationResponse{
		ID:              c.ID.String(),
		CalculationType: string(c.CalculationType),
		InputData:       json.RawMessage(c.InputData),
		Result:          json.RawMessage(c.Result),
		CreatedAt:       c.CreatedAt,
	}
}
