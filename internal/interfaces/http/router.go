package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Provider  *SessionProvider
	JWTSecret string
	JWTIssuer string
}

// Router registers the dashboard API routes. Everything under /api/dashboard
// requires a Bearer token from the core API's issuer.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	dash := api.Group("/dashboard", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Session state
	sessionHandler := NewSessionHandler(deps.Provider)
	dash.Get("/session", sessionHandler.GetSession)
	dash.Delete("/session", sessionHandler.SignOut)
	dash.Put("/scope", sessionHandler.ChangeScope)
	dash.Put("/tab", sessionHandler.SetTab)
	dash.Put("/filters/inventory", sessionHandler.ApplyInventoryFilters)
	dash.Put("/filters/movements", sessionHandler.ApplyMovementFilters)
	dash.Post("/filters/movements/quick-range", sessionHandler.QuickRange)
	dash.Delete("/filters/:tab/:key", sessionHandler.ClearFilter)
	dash.Delete("/filters/:tab", sessionHandler.ClearFilters)
	dash.Get("/kpis", sessionHandler.KPIs)
	dash.Post("/kpis/refresh", sessionHandler.RefreshKPIs)
	dash.Put("/preferences/:table", sessionHandler.UpdatePreferences)

	// Listings
	listingHandler := NewListingHandler(deps.Provider)
	dash.Get("/inventory", listingHandler.Inventory)
	dash.Get("/inventory/:itemId/movements", listingHandler.ItemMovements)
	dash.Get("/movements", listingHandler.Movements)
	dash.Get("/items", listingHandler.Items)

	// Downloads
	exportHandler := NewExportHandler(deps.Provider)
	export := dash.Group("/export")
	export.Get("/inventory.csv", exportHandler.InventoryCSV)
	export.Get("/movements.csv", exportHandler.MovementsCSV)
	export.Get("/summary.pdf", exportHandler.SummaryPDF)
}
