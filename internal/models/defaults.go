package models

// DefaultStationData is the document written to the store the first time a
// deployment subscribes and no document exists yet.
func DefaultStationData() *StationState {
	return &StationState{
		Version: SchemaVersion,
		Tanks: []Tank{
			{ID: "t1", FuelType: "Essence", Capacity: 20000, CurrentLevel: 15000, CriticalLevel: 2000},
			{ID: "t2", FuelType: "Diesel", Capacity: 30000, CurrentLevel: 22000, CriticalLevel: 3000},
		},
		Pumps: []Pump{
			{ID: "p1", Name: "Pompe 01", TankID: "t1", FuelType: "Essence", LastIndex: 124500},
			{ID: "p2", Name: "Pompe 02", TankID: "t1", FuelType: "Essence", LastIndex: 98200},
			{ID: "p3", Name: "Pompe 03", TankID: "t2", FuelType: "Diesel", LastIndex: 350100},
		},
		Products: []Product{
			{ID: "prod1", Name: "Huile Moteur 5W30", Category: "Lubrifiants", PurchasePrice: 15000, SalePrice: 25000, Stock: 45, MinStock: 10},
			{ID: "prod2", Name: "Lave Glace 5L", Category: "Entretien", PurchasePrice: 3000, SalePrice: 5000, Stock: 8, MinStock: 15},
			{ID: "prod3", Name: "Eau Minérale 1.5L", Category: "Boutique", PurchasePrice: 300, SalePrice: 600, Stock: 120, MinStock: 24},
		},
		Shifts:   []ShiftRecord{},
		Sales:    []Sale{},
		Expenses: []Expense{},
		Restocks: []RestockRecord{},
		FuelPrices: map[string]float64{
			"Essence": 750,
			"Diesel":  720,
			"Super":   800,
			"LPG":     450,
		},
		Settings: GeneralSettings{
			StationName:  "Station Pro Centre-Ville",
			ManagerName:  "Jean Dupont",
			Phone:        "+225 01 02 03 04 05",
			Email:        "contact@stationpro.ci",
			Address:      "Rue du Commerce, Plateau, Abidjan",
			Currency:     "FCFA",
			OpeningHours: "24h/24, 7j/7",
		},
	}
}
