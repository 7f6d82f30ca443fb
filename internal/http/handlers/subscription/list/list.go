// Package list реализует HTTP-обработчик списка действующих подписок.
// Чтение попутно вычищает истёкшие записи из хранилища.
package list

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

// Handler управляет HTTP-запросами на список подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс реестра подписок.
type Service interface {
	Active(ctx context.Context) ([]models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список действующих подписок
// @Description Возвращает действующие подписки; истёкшие записи вычищаются этим же чтением.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} map[string]any
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /subscriptions/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subs, err := h.service.Active(r.Context())
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscriptions"))
		return
	}

	if subs == nil {
		subs = []models.Subscription{}
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscriptions": subs,
	}))
}
