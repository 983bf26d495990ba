package history

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CalculationType string

const (
	TypePAYE   CalculationType = "PAYE"
	TypeVAT    CalculationType = "VAT"
	TypeNIS    CalculationType = "NIS"
	TypeSalary CalculationType = "SALARY"
)

func (t CalculationType) Valid() bool {
	switch t {
	case TypePAYE, TypeVAT, TypeNIS, TypeSalary:
		return true
	}
	return false
}

type Calculation struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          string          `gorm:"type:text;not null;index:idx_calculation_history_user_created,priority:1"`
	CalculationType CalculationType `gorm:"type:varchar(16);not null"`
	InputData       Document        `gorm:"type:jsonb;not null"`
	Result          Document        `gorm:"type:jsonb;not null"`
	CreatedAt       time.Time       `gorm:"index:idx_calculation_history_user_created,priority:2,sort:desc"`
}

func (Calculation) TableName() string {
	return "calculation_history"
}

// Document is a JSON value kept byte for byte in a jsonb column.
type Document []byte

func (d Document) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return string(d), nil
}

func (d *Document) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = nil
	case []byte:
		*d = bytes.Clone(v)
	case string:
		*d = Document(v)
	default:
		return fmt.Errorf("history: cannot scan %T into Document", src)
	}
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	*d = bytes.Clone(data)
	return nil
}
