package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grayvally/invoicer-api/internal/application/draft"
	"github.com/grayvally/invoicer-api/internal/application/export"
	"github.com/grayvally/invoicer-api/internal/application/leads"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Drafts      *draft.Service
	Exports     *export.Service
	Leads       *leads.Service
	PIN         string
	TokenSecret string
	Issuer      string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Unlock prompt (public)
	unlockHandler := NewUnlockHandler(deps.PIN, deps.TokenSecret, deps.Issuer)
	api.Post("/unlock", unlockHandler.Unlock)

	// Lead forms (public: the marketing pages post here)
	leadHandler := NewLeadHandler(deps.Leads)
	api.Post("/leads/:formType", leadHandler.Submit)

	// Invoice tool (behind the unlock gate)
	tool := api.Group("/draft", UnlockMiddleware(deps.TokenSecret))
	draftHandler := NewDraftHandler(deps.Drafts)
	tool.Get("/", draftHandler.Get)
	tool.Put("/", draftHandler.Update)
	tool.Post("/items", draftHandler.AddItem)
	tool.Put("/items/:id", draftHandler.UpdateItem)
	tool.Delete("/items/:id", draftHandler.RemoveItem)
	tool.Get("/totals", draftHandler.Totals)
	tool.Get("/preview", draftHandler.Preview)
	tool.Post("/save", draftHandler.Save)
	tool.Post("/reset", draftHandler.Reset)

	exportHandler := NewExportHandler(deps.Exports)
	tool.Get("/export.pdf", exportHandler.PDF)
	tool.Get("/export.xml", exportHandler.XML)
}
