// Package cards реализует HTTP-обработчик, отдающий карточки тарифных
// планов с удалённого JSON-хоста.
package cards

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

// Handler управляет HTTP-запросами на карточки тарифов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс клиента витрины.
type Service interface {
	Cards(ctx context.Context) ([]models.CardData, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Карточки тарифных планов
// @Tags Content
// @Produce  json
// @Success 200 {object} map[string]any
// @Failure 502 {object} response.ErrorResponse "Витрина недоступна"
// @Router /content/cards [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.cards"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cards, err := h.service.Cards(r.Context())
	if err != nil {
		log.Error("failed to fetch cards", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not fetch cards"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"cards": cards,
	}))
}
