package models

// SchemaVersion tags the persisted document shape so the synchronization
// layer can detect and migrate older documents.
const SchemaVersion = 1

// StationState is the single aggregate document holding every entity for one
// station. Mutations never modify a state in place; they derive a new value
// from a Clone of the previous one.
type StationState struct {
	Version    int                `json:"version"`
	Tanks      []Tank             `json:"tanks"`
	Pumps      []Pump             `json:"pumps"`
	Products   []Product          `json:"products"`
	Shifts     []ShiftRecord      `json:"shifts"`
	Sales      []Sale             `json:"sales"`
	Expenses   []Expense          `json:"expenses"`
	Restocks   []RestockRecord    `json:"restocks"`
	FuelPrices map[string]float64 `json:"fuelPrices"`
	Settings   GeneralSettings    `json:"settings"`
}

// Clone returns a deep copy of the state. Every collection and the price map
// are copied so the result shares no mutable memory with the receiver.
func (s *StationState) Clone() *StationState {
	if s == nil {
		return nil
	}

	next := &StationState{
		Version:  s.Version,
		Settings: s.Settings,
	}

	next.Tanks = append([]Tank(nil), s.Tanks...)
	next.Pumps = append([]Pump(nil), s.Pumps...)
	next.Products = append([]Product(nil), s.Products...)
	next.Shifts = append([]ShiftRecord(nil), s.Shifts...)
	next.Sales = append([]Sale(nil), s.Sales...)
	next.Expenses = append([]Expense(nil), s.Expenses...)
	next.Restocks = append([]RestockRecord(nil), s.Restocks...)

	next.FuelPrices = make(map[string]float64, len(s.FuelPrices))
	for fuelType, price := range s.FuelPrices {
		next.FuelPrices[fuelType] = price
	}

	return next
}

// TankByID returns the tank with the given ID, or nil if absent.
func (s *StationState) TankByID(id string) *Tank {
	for i := range s.Tanks {
		if s.Tanks[i].ID == id {
			return &s.Tanks[i]
		}
	}
	return nil
}

// PumpByID returns the pump with the given ID, or nil if absent.
func (s *StationState) PumpByID(id string) *Pump {
	for i := range s.Pumps {
		if s.Pumps[i].ID == id {
			return &s.Pumps[i]
		}
	}
	return nil
}

// ProductByID returns the product with the given ID, or nil if absent.
func (s *StationState) ProductByID(id string) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// HasFuelType reports whether a price entry exists for the given fuel type.
func (s *StationState) HasFuelType(fuelType string) bool {
	_, ok := s.FuelPrices[fuelType]
	return ok
}

// FuelTypeInUse reports whether any tank or pump currently references the
// given fuel type. Callers must check this before deleting a price entry.
func (s *StationState) FuelTypeInUse(fuelType string) bool {
	for i := range s.Tanks {
		if s.Tanks[i].FuelType == fuelType {
			return true
		}
	}
	for i := range s.Pumps {
		if s.Pumps[i].FuelType == fuelType {
			return true
		}
	}
	return false
}
