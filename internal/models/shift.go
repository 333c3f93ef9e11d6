package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ShiftRecord is a completed interval of pump operation bounded by a start
// and an end meter index. Records are append-only history and never modified
// after creation.
type ShiftRecord struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	PumpID      string    `json:"pumpId"`
	StartIndex  float64   `json:"startIndex"`
	EndIndex    float64   `json:"endIndex"`
	VolumeSold  float64   `json:"volumeSold"`
	UnitPrice   float64   `json:"unitPrice"`
	TotalAmount float64   `json:"totalAmount"`
}

// NewShiftRecord builds a shift for the given pump, fixing the unit price in
// effect at call time and deriving volume and amount from the index delta.
func NewShiftRecord(pump *Pump, endIndex, unitPrice float64) *ShiftRecord {
	volume := endIndex - pump.LastIndex
	return &ShiftRecord{
		ID:          uuid.New().String(),
		Timestamp:   time.Now(),
		PumpID:      pump.ID,
		StartIndex:  pump.LastIndex,
		EndIndex:    endIndex,
		VolumeSold:  volume,
		UnitPrice:   unitPrice,
		TotalAmount: volume * unitPrice,
	}
}

// Validate validates the shift data. The end index must be strictly greater
// than the start index.
func (r *ShiftRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("shift ID is required")
	}

	if r.PumpID == "" {
		return fmt.Errorf("shift pump reference is required")
	}

	if r.EndIndex <= r.StartIndex {
		return fmt.Errorf("end index must be strictly greater than start index (%v)", r.StartIndex)
	}

	if r.UnitPrice <= 0 {
		return fmt.Errorf("unit price must be positive")
	}

	return nil
}
