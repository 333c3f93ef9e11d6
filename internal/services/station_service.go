package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"stationpro-api/internal/models"
	"stationpro-api/internal/mutation"
	stationsync "stationpro-api/internal/sync"
)

type stationService struct {
	sync      *stationsync.Synchronizer
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewStationService creates a station service bound to the synchronizer.
func NewStationService(sync *stationsync.Synchronizer, logger *logrus.Logger) StationService {
	return &stationService{
		sync:      sync,
		validator: validator.New(),
		logger:    logger,
	}
}

func (s *stationService) State(ctx context.Context) *models.StationState {
	return s.sync.Snapshot()
}

func (s *stationService) CompleteShift(ctx context.Context, req *CompleteShiftRequest) (*models.ShiftRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var shift *models.ShiftRecord
	err := s.sync.Mutate(ctx, "complete_shift", func(cur *models.StationState) (*models.StationState, error) {
		pump := cur.PumpByID(req.PumpID)
		if pump == nil {
			return nil, fmt.Errorf("pump with id %s not found", req.PumpID)
		}
		price, ok := cur.FuelPrices[pump.FuelType]
		if !ok || price <= 0 {
			return nil, fmt.Errorf("validation failed: no price configured for fuel type %s", pump.FuelType)
		}
		if req.EndIndex <= pump.LastIndex {
			return nil, fmt.Errorf("validation failed: end index %.2f must be greater than current index %.2f", req.EndIndex, pump.LastIndex)
		}
		if cur.TankByID(pump.TankID) == nil {
			return nil, fmt.Errorf("tank with id %s not found", pump.TankID)
		}

		shift = models.NewShiftRecord(pump, req.EndIndex, price)
		return mutation.CompleteShift(cur, *shift, pump.TankID, pump.ID, req.EndIndex), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"pump_id": req.PumpID,
		"volume":  shift.VolumeSold,
		"amount":  shift.TotalAmount,
	}).Info("Shift completed")
	return shift, nil
}

func (s *stationService) RecordSale(ctx context.Context, req *RecordSaleRequest) (*models.Sale, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var sale *models.Sale
	err := s.sync.Mutate(ctx, "record_sale", func(cur *models.StationState) (*models.StationState, error) {
		product := cur.ProductByID(req.ProductID)
		if product == nil {
			return nil, fmt.Errorf("product with id %s not found", req.ProductID)
		}
		if product.Stock < req.Quantity {
			return nil, fmt.Errorf("validation failed: insufficient stock for %s (have %d, want %d)", product.Name, product.Stock, req.Quantity)
		}

		sale = models.NewSale(product, req.Quantity)
		next := mutation.RecordSale(cur, *sale)
		return mutation.AdjustStock(next, product.ID, -req.Quantity), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
		"total":      sale.TotalPrice,
	}).Info("Sale recorded")
	return sale, nil
}

func (s *stationService) AdjustStock(ctx context.Context, productID string, req *AdjustStockRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return s.sync.Mutate(ctx, "adjust_stock", func(cur *models.StationState) (*models.StationState, error) {
		product := cur.ProductByID(productID)
		if product == nil {
			return nil, fmt.Errorf("product with id %s not found", productID)
		}
		if product.Stock+req.Delta < 0 {
			return nil, fmt.Errorf("validation failed: stock for %s cannot go below zero", product.Name)
		}
		return mutation.AdjustStock(cur, productID, req.Delta), nil
	})
}

func (s *stationService) AddRestock(ctx context.Context, productID string, req *RestockRequest) (*models.RestockRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var record *models.RestockRecord
	err := s.sync.Mutate(ctx, "add_restock", func(cur *models.StationState) (*models.StationState, error) {
		product := cur.ProductByID(productID)
		if product == nil {
			return nil, fmt.Errorf("product with id %s not found", productID)
		}
		record = models.NewRestockRecord(product, req.Quantity)
		return mutation.AddRestock(cur, *record), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": productID,
		"quantity":   req.Quantity,
	}).Info("Restock recorded")
	return record, nil
}

func (s *stationService) AddProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := models.NewProduct(req.Name, req.Category, req.PurchasePrice, req.SalePrice, req.Stock, req.MinStock)
	err := s.sync.Mutate(ctx, "add_product", func(cur *models.StationState) (*models.StationState, error) {
		return mutation.AddProduct(cur, *product), nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *stationService) UpdateProduct(ctx context.Context, id string, req *ProductRequest) (*models.Product, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var updated *models.Product
	err := s.sync.Mutate(ctx, "update_product", func(cur *models.StationState) (*models.StationState, error) {
		existing := cur.ProductByID(id)
		if existing == nil {
			return nil, fmt.Errorf("product with id %s not found", id)
		}
		p := *existing
		p.Name = req.Name
		p.Category = req.Category
		p.PurchasePrice = req.PurchasePrice
		p.SalePrice = req.SalePrice
		p.Stock = req.Stock
		p.MinStock = req.MinStock
		updated = &p
		return mutation.UpdateProduct(cur, p), nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *stationService) DeleteProduct(ctx context.Context, id string) error {
	return s.sync.Mutate(ctx, "delete_product", func(cur *models.StationState) (*models.StationState, error) {
		if cur.ProductByID(id) == nil {
			return nil, fmt.Errorf("product with id %s not found", id)
		}
		return mutation.DeleteProduct(cur, id), nil
	})
}

func (s *stationService) AddExpense(ctx context.Context, req *ExpenseRequest) (*models.Expense, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	expense := models.NewExpense(req.Label, req.Category, req.Amount, req.Date)
	err := s.sync.Mutate(ctx, "add_expense", func(cur *models.StationState) (*models.StationState, error) {
		return mutation.AddExpense(cur, *expense), nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *stationService) DeleteExpense(ctx context.Context, id string) error {
	return s.sync.Mutate(ctx, "delete_expense", func(cur *models.StationState) (*models.StationState, error) {
		found := false
		for _, e := range cur.Expenses {
			if e.ID == id {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("expense with id %s not found", id)
		}
		return mutation.DeleteExpense(cur, id), nil
	})
}

func (s *stationService) SetFuelPrice(ctx context.Context, fuelType string, req *SetFuelPriceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return s.sync.Mutate(ctx, "set_fuel_price", func(cur *models.StationState) (*models.StationState, error) {
		if !cur.HasFuelType(fuelType) {
			return nil, fmt.Errorf("fuel type %s not found", fuelType)
		}
		return mutation.SetFuelPrice(cur, fuelType, req.Price), nil
	})
}

func (s *stationService) AddFuelType(ctx context.Context, req *AddFuelTypeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return s.sync.Mutate(ctx, "add_fuel_type", func(cur *models.StationState) (*models.StationState, error) {
		if cur.HasFuelType(req.FuelType) {
			return nil, fmt.Errorf("fuel type %s already exists", req.FuelType)
		}
		return mutation.AddFuelType(cur, req.FuelType, req.InitialPrice), nil
	})
}

func (s *stationService) DeleteFuelType(ctx context.Context, fuelType string) error {
	return s.sync.Mutate(ctx, "delete_fuel_type", func(cur *models.StationState) (*models.StationState, error) {
		if !cur.HasFuelType(fuelType) {
			return nil, fmt.Errorf("fuel type %s not found", fuelType)
		}
		if cur.FuelTypeInUse(fuelType) {
			return nil, fmt.Errorf("cannot delete fuel type %s: still referenced by a tank or pump", fuelType)
		}
		return mutation.DeleteFuelType(cur, fuelType), nil
	})
}

func (s *stationService) RenameFuelType(ctx context.Context, oldType string, req *RenameFuelTypeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return s.sync.Mutate(ctx, "rename_fuel_type", func(cur *models.StationState) (*models.StationState, error) {
		if !cur.HasFuelType(oldType) {
			return nil, fmt.Errorf("fuel type %s not found", oldType)
		}
		if oldType != req.NewType && cur.HasFuelType(req.NewType) {
			return nil, fmt.Errorf("fuel type %s already exists", req.NewType)
		}
		return mutation.RenameFuelType(cur, oldType, req.NewType), nil
	})
}

func (s *stationService) UpdateTank(ctx context.Context, id string, req *UpdateTankRequest) (*models.Tank, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var updated *models.Tank
	err := s.sync.Mutate(ctx, "update_tank", func(cur *models.StationState) (*models.StationState, error) {
		existing := cur.TankByID(id)
		if existing == nil {
			return nil, fmt.Errorf("tank with id %s not found", id)
		}
		if !cur.HasFuelType(req.FuelType) {
			return nil, fmt.Errorf("fuel type %s not found", req.FuelType)
		}

		// Current level is owned by shift completion, not by tank edits.
		t := *existing
		t.FuelType = req.FuelType
		t.Capacity = req.Capacity
		t.CriticalLevel = req.CriticalLevel
		updated = &t
		return mutation.UpdateTank(cur, t), nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *stationService) AddPump(ctx context.Context, req *AddPumpRequest) (*models.Pump, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var pump *models.Pump
	err := s.sync.Mutate(ctx, "add_pump", func(cur *models.StationState) (*models.StationState, error) {
		tank := cur.TankByID(req.TankID)
		if tank == nil {
			return nil, fmt.Errorf("tank with id %s not found", req.TankID)
		}
		pump = models.NewPump(req.Name, tank, req.LastIndex)
		return mutation.AddPump(cur, *pump), nil
	})
	if err != nil {
		return nil, err
	}
	return pump, nil
}

func (s *stationService) UpdatePump(ctx context.Context, id string, req *UpdatePumpRequest) (*models.Pump, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var updated *models.Pump
	err := s.sync.Mutate(ctx, "update_pump", func(cur *models.StationState) (*models.StationState, error) {
		existing := cur.PumpByID(id)
		if existing == nil {
			return nil, fmt.Errorf("pump with id %s not found", id)
		}
		if cur.TankByID(req.TankID) == nil {
			return nil, fmt.Errorf("tank with id %s not found", req.TankID)
		}
		if req.LastIndex != nil && *req.LastIndex < existing.LastIndex {
			return nil, fmt.Errorf("validation failed: meter index cannot decrease")
		}

		p := *existing
		p.Name = req.Name
		p.TankID = req.TankID
		if req.LastIndex != nil {
			p.LastIndex = *req.LastIndex
		}
		next := mutation.UpdatePump(cur, p)
		updated = next.PumpByID(id)
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *stationService) UpdateSettings(ctx context.Context, req *SettingsRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	settings := models.GeneralSettings{
		StationName:  req.StationName,
		ManagerName:  req.ManagerName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Currency:     req.Currency,
		OpeningHours: req.OpeningHours,
	}
	return s.sync.Mutate(ctx, "update_settings", func(cur *models.StationState) (*models.StationState, error) {
		return mutation.UpdateSettings(cur, settings), nil
	})
}
