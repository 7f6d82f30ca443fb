// Package results реализует HTTP-обработчик, отдающий результаты
// сыгранных матчей по дням.
package results

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/VictonicTechnologies/thegurutips/internal/http/response"
	"github.com/VictonicTechnologies/thegurutips/internal/lib/sl"
	"github.com/VictonicTechnologies/thegurutips/internal/models"
)

// Handler управляет HTTP-запросами на результаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс клиента витрины.
type Service interface {
	Results(ctx context.Context) ([]models.ResultDay, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Результаты матчей
// @Tags Content
// @Produce  json
// @Success 200 {object} map[string]any
// @Failure 502 {object} response.ErrorResponse "Витрина недоступна"
// @Router /content/results [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.results"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	results, err := h.service.Results(r.Context())
	if err != nil {
		log.Error("failed to fetch results", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not fetch results"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"results": results,
	}))
}
