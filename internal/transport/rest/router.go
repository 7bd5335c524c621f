package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/asset-management/internal/asset"
	"github.com/frahmantamala/asset-management/internal/assetrequest"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/transport/middleware"
	"github.com/frahmantamala/asset-management/internal/transport/swagger"
	"github.com/frahmantamala/asset-management/internal/upload"
)

// RegisterAllRoutes wires every handler onto the router. Admin-only surfaces
// (catalog writes, request decisions, uploads) sit behind RequireAdmin, which
// reads the role straight from the token claims.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, corsOrigins []string, authHandler *auth.Handler, assetHandler *asset.Handler, requestHandler *assetrequest.Handler, uploadHandler *upload.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(corsOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live at root, outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Uploaded files are public reads; writes go through /api/fileupload
	if uploadHandler != nil {
		router.Get("/uploads/{name}", uploadHandler.ServeFile)
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", authHandler.Register)
				sr.Post("/login", authHandler.Login)
			})
		}

		if authHandler == nil {
			return
		}

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			if assetHandler != nil {
				pr.Route("/assets", func(ar chi.Router) {
					ar.Get("/", assetHandler.GetAll)
					ar.Get("/available", assetHandler.GetAvailable)
					ar.Get("/assigned", assetHandler.GetAssigned)
					ar.Get("/{id}", assetHandler.GetByID)

					ar.Group(func(mr chi.Router) {
						mr.Use(authHandler.RequireAdmin)
						mr.Post("/", assetHandler.Create)
						mr.Put("/{id}", assetHandler.Update)
						mr.Delete("/{id}", assetHandler.Delete)
					})
				})

				pr.Get("/image/asset/{id}", assetHandler.ServeImage)
			}

			if requestHandler != nil {
				pr.Route("/assetrequests", func(rr chi.Router) {
					rr.Get("/my-requests", requestHandler.GetMyRequests)
					rr.Get("/{id}", requestHandler.GetByID)
					rr.Post("/", requestHandler.Create)

					rr.Group(func(mr chi.Router) {
						mr.Use(authHandler.RequireAdmin)
						mr.Get("/", requestHandler.GetAll)
						mr.Put("/{id}/process", requestHandler.Process)
					})
				})
			}

			if uploadHandler != nil {
				pr.Route("/fileupload", func(fr chi.Router) {
					fr.Use(authHandler.RequireAdmin)
					fr.Post("/upload", uploadHandler.Upload)
					fr.Delete("/delete", uploadHandler.Delete)
				})
			}
		})
	})
}
