package handlers

// @title StationPro API
// @version 1.0
// @description Fuel-station management API: shift tracking, shop sales, expenses, reporting and AI recommendations over a single shared station state document
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/your-org/stationpro-api
// @contact.email support@stationpro.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @tag.name station
// @tag.description Station state document and live stream

// @tag.name shifts
// @tag.description Pump shift tracking

// @tag.name fuel
// @tag.description Fuel types, prices, tanks and pumps

// @tag.name shop
// @tag.description Shop products, sales and restocks

// @tag.name expenses
// @tag.description Expense tracking

// @tag.name settings
// @tag.description Station settings

// @tag.name reports
// @tag.description Dashboards, period reports and exports

// @tag.name insights
// @tag.description AI performance recommendations
