package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Tank represents a fuel storage tank. CurrentLevel only decreases through
// completed shifts.
type Tank struct {
	ID            string  `json:"id" validate:"required"`
	FuelType      string  `json:"fuelType" validate:"required"`
	Capacity      float64 `json:"capacity" validate:"required,gt=0"`
	CurrentLevel  float64 `json:"currentLevel" validate:"gte=0"`
	CriticalLevel float64 `json:"criticalLevel" validate:"gte=0"`
}

// NewTank creates a tank with a generated ID.
func NewTank(fuelType string, capacity, currentLevel, criticalLevel float64) *Tank {
	return &Tank{
		ID:            uuid.New().String(),
		FuelType:      fuelType,
		Capacity:      capacity,
		CurrentLevel:  currentLevel,
		CriticalLevel: criticalLevel,
	}
}

// Validate validates the tank data.
func (t *Tank) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tank ID is required")
	}

	if strings.TrimSpace(t.FuelType) == "" {
		return fmt.Errorf("tank fuel type is required")
	}

	if t.Capacity <= 0 {
		return fmt.Errorf("tank capacity must be positive")
	}

	if t.CurrentLevel < 0 {
		return fmt.Errorf("tank level cannot be negative")
	}

	return nil
}

// Pump represents a dispensing pump. LastIndex is a monotonic meter reading;
// FuelType always mirrors the fuel type of the referenced tank.
type Pump struct {
	ID        string  `json:"id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	TankID    string  `json:"tankId" validate:"required"`
	FuelType  string  `json:"fuelType" validate:"required"`
	LastIndex float64 `json:"lastIndex" validate:"gte=0"`
}

// NewPump creates a pump attached to the given tank, mirroring its fuel type.
func NewPump(name string, tank *Tank, lastIndex float64) *Pump {
	return &Pump{
		ID:        uuid.New().String(),
		Name:      name,
		TankID:    tank.ID,
		FuelType:  tank.FuelType,
		LastIndex: lastIndex,
	}
}

// Validate validates the pump data.
func (p *Pump) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("pump ID is required")
	}

	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("pump name is required")
	}

	if p.TankID == "" {
		return fmt.Errorf("pump tank reference is required")
	}

	if p.LastIndex < 0 {
		return fmt.Errorf("pump meter index cannot be negative")
	}

	return nil
}
