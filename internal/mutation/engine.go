// Package mutation holds the closed catalogue of state transitions over the
// station document. Every operation takes the current snapshot plus a typed
// input and produces a new snapshot; the input snapshot is never modified.
//
// The engine performs only the referential rewrites each operation names.
// Business-rule validation (meter index monotonicity, stock floors, duplicate
// fuel types, in-use fuel type deletion) is the responsibility of the caller
// boundary in the services layer.
package mutation

import (
	"stationpro-api/internal/models"
)

// CompleteShift appends the shift to history, decrements the named tank's
// level by the shift's volume and advances the named pump's meter index.
func CompleteShift(state *models.StationState, shift models.ShiftRecord, tankID, pumpID string, newIndex float64) *models.StationState {
	next := state.Clone()

	next.Shifts = append(next.Shifts, shift)

	if tank := next.TankByID(tankID); tank != nil {
		tank.CurrentLevel -= shift.VolumeSold
	}

	if pump := next.PumpByID(pumpID); pump != nil {
		pump.LastIndex = newIndex
	}

	return next
}

// RecordSale appends a sale to history. Stock is not touched here; AdjustStock
// is a separate operation composed by the caller.
func RecordSale(state *models.StationState, sale models.Sale) *models.StationState {
	next := state.Clone()
	next.Sales = append(next.Sales, sale)
	return next
}

// AdjustStock adds the signed delta to the named product's stock. No floor at
// zero is enforced.
func AdjustStock(state *models.StationState, productID string, delta int) *models.StationState {
	next := state.Clone()

	if product := next.ProductByID(productID); product != nil {
		product.Stock += delta
	}

	return next
}

// AddRestock prepends the restock record to history (most-recent-first) and
// adds its quantity to the named product's stock in the same transition.
func AddRestock(state *models.StationState, restock models.RestockRecord) *models.StationState {
	next := state.Clone()

	next.Restocks = append([]models.RestockRecord{restock}, next.Restocks...)

	if product := next.ProductByID(restock.ProductID); product != nil {
		product.Stock += restock.Quantity
	}

	return next
}

// AddProduct appends a product to the catalogue.
func AddProduct(state *models.StationState, product models.Product) *models.StationState {
	next := state.Clone()
	next.Products = append(next.Products, product)
	return next
}

// UpdateProduct replaces the product with the same ID.
func UpdateProduct(state *models.StationState, product models.Product) *models.StationState {
	next := state.Clone()

	for i := range next.Products {
		if next.Products[i].ID == product.ID {
			next.Products[i] = product
			break
		}
	}

	return next
}

// DeleteProduct removes the product by ID. Sales and restock history keep a
// dangling product reference that derived views resolve to "Unknown".
func DeleteProduct(state *models.StationState, id string) *models.StationState {
	next := state.Clone()

	filtered := next.Products[:0]
	for _, p := range next.Products {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	next.Products = filtered

	return next
}

// AddExpense appends an expense.
func AddExpense(state *models.StationState, expense models.Expense) *models.StationState {
	next := state.Clone()
	next.Expenses = append(next.Expenses, expense)
	return next
}

// DeleteExpense removes the expense by ID.
func DeleteExpense(state *models.StationState, id string) *models.StationState {
	next := state.Clone()

	filtered := next.Expenses[:0]
	for _, e := range next.Expenses {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	next.Expenses = filtered

	return next
}

// SetFuelPrice upserts the price for a fuel type.
func SetFuelPrice(state *models.StationState, fuelType string, price float64) *models.StationState {
	next := state.Clone()
	next.FuelPrices[fuelType] = price
	return next
}

// AddFuelType upserts a fuel type with its initial price. Callers reject
// duplicate names before invoking.
func AddFuelType(state *models.StationState, fuelType string, initialPrice float64) *models.StationState {
	return SetFuelPrice(state, fuelType, initialPrice)
}

// DeleteFuelType removes the price entry. Callers must verify no tank or pump
// references the fuel type before invoking.
func DeleteFuelType(state *models.StationState, fuelType string) *models.StationState {
	next := state.Clone()
	delete(next.FuelPrices, fuelType)
	return next
}

// RenameFuelType moves the price entry to the new key, preserving its value,
// and rewrites the fuel type on every tank and pump that referenced the old
// key. All three collections change within the one snapshot.
func RenameFuelType(state *models.StationState, oldType, newType string) *models.StationState {
	next := state.Clone()

	price := next.FuelPrices[oldType]
	delete(next.FuelPrices, oldType)
	next.FuelPrices[newType] = price

	for i := range next.Tanks {
		if next.Tanks[i].FuelType == oldType {
			next.Tanks[i].FuelType = newType
		}
	}

	for i := range next.Pumps {
		if next.Pumps[i].FuelType == oldType {
			next.Pumps[i].FuelType = newType
		}
	}

	return next
}

// UpdateTank replaces the tank with the same ID.
func UpdateTank(state *models.StationState, tank models.Tank) *models.StationState {
	next := state.Clone()

	for i := range next.Tanks {
		if next.Tanks[i].ID == tank.ID {
			next.Tanks[i] = tank
			break
		}
	}

	return next
}

// AddPump appends a pump.
func AddPump(state *models.StationState, pump models.Pump) *models.StationState {
	next := state.Clone()
	next.Pumps = append(next.Pumps, pump)
	return next
}

// UpdatePump replaces the pump with the same ID and re-derives its fuel type
// from the referenced tank, overriding whatever fuel type the input carried.
// This is the one mutation point where a pump's tank can change.
func UpdatePump(state *models.StationState, pump models.Pump) *models.StationState {
	next := state.Clone()

	if tank := next.TankByID(pump.TankID); tank != nil {
		pump.FuelType = tank.FuelType
	}

	for i := range next.Pumps {
		if next.Pumps[i].ID == pump.ID {
			next.Pumps[i] = pump
			break
		}
	}

	return next
}

// UpdateSettings replaces the settings singleton wholesale.
func UpdateSettings(state *models.StationState, settings models.GeneralSettings) *models.StationState {
	next := state.Clone()
	next.Settings = settings
	return next
}
