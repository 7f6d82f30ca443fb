// Package thegurutips предоставляет маршруты для основного приложения.
package thegurutips

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/VictonicTechnologies/thegurutips/internal/content"
	contentcards "github.com/VictonicTechnologies/thegurutips/internal/http/handlers/content/cards"
	contentpredictions "github.com/VictonicTechnologies/thegurutips/internal/http/handlers/content/predictions"
	contentresults "github.com/VictonicTechnologies/thegurutips/internal/http/handlers/content/results"
	"github.com/VictonicTechnologies/thegurutips/internal/http/handlers/payment/check"
	"github.com/VictonicTechnologies/thegurutips/internal/http/handlers/payment/instructions"
	"github.com/VictonicTechnologies/thegurutips/internal/http/handlers/payment/stkpush"
	"github.com/VictonicTechnologies/thegurutips/internal/http/handlers/payment/validate"
	"github.com/VictonicTechnologies/thegurutips/internal/http/handlers/subscription/grant"
	"github.com/VictonicTechnologies/thegurutips/internal/http/handlers/subscription/health"
	"github.com/VictonicTechnologies/thegurutips/internal/http/handlers/subscription/list"
	"github.com/VictonicTechnologies/thegurutips/internal/http/handlers/subscription/status"
	"github.com/VictonicTechnologies/thegurutips/internal/http/middlewarectx"
	"github.com/VictonicTechnologies/thegurutips/internal/ledger"
	"github.com/VictonicTechnologies/thegurutips/internal/register"
	paymentservice "github.com/VictonicTechnologies/thegurutips/internal/services/payment"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, validationService *paymentservice.ValidationService,
	codeLedger *ledger.Ledger, subRegister *register.Register, contentClient *content.Client, tillNumber string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/payments/validate", validate.New(logger, validationService).ServeHTTP)
		})
		r.Post("/payments/stkpush", stkpush.New(logger).ServeHTTP)
		r.Get("/payments/check", check.New(logger, codeLedger).ServeHTTP)
		r.Get("/payments/instructions", instructions.New(logger, tillNumber).ServeHTTP)

		r.Post("/subscriptions", grant.New(logger, subRegister).ServeHTTP)
		r.Get("/subscriptions/status", status.New(logger, subRegister).ServeHTTP)
		r.Get("/subscriptions/list", list.New(logger, subRegister).ServeHTTP)

		r.Get("/content/cards", contentcards.New(logger, contentClient).ServeHTTP)
		r.Get("/content/predictions/{tier}", contentpredictions.New(logger, contentClient).ServeHTTP)
		r.Get("/content/results", contentresults.New(logger, contentClient).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
