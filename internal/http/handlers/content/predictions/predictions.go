// Package predictions реализует HTTP-обработчик, отдающий прогнозы
// запрошенного уровня: basic, premium или free.
package predictions

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/VictonicTechnologies/thegurutips/internal/content"
	"github.com/VictonicTechnologies/thegurutips/internal/http/response"
	"github.com/VictonicTechnologies/thegurutips/internal/lib/sl"
	"github.com/VictonicTechnologies/thegurutips/internal/models"
)

// Handler управляет HTTP-запросами на прогнозы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс клиента витрины.
type Service interface {
	Predictions(ctx context.Context, tier string) ([]models.Prediction, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Прогнозы уровня
// @Tags Content
// @Produce  json
// @Param tier path string true "Уровень прогнозов" Enums(basic, premium, free)
// @Success 200 {object} map[string]any
// @Failure 404 {object} response.ErrorResponse "Неизвестный уровень"
// @Failure 502 {object} response.ErrorResponse "Витрина недоступна"
// @Router /content/predictions/{tier} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.predictions"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tier := chi.URLParam(r, "tier")
	predictions, err := h.service.Predictions(r.Context(), tier)
	if errors.Is(err, content.ErrUnknownTier) {
		log.Info("unknown tier requested", slog.String("tier", tier))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("unknown predictions tier"))
		return
	}
	if err != nil {
		log.Error("failed to fetch predictions", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not fetch predictions"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"tier":        tier,
		"predictions": predictions,
	}))
}
