// Package status реализует HTTP-обработчик проверки, действует ли
// сейчас подписка на план.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/VictonicTechnologies/thegurutips/internal/http/response"
	"github.com/VictonicTechnologies/thegurutips/internal/lib/sl"
)

// Handler управляет HTTP-запросами на проверку статуса подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс реестра подписок.
type Service interface {
	IsActive(ctx context.Context, planName string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статус подписки на план
// @Description Сообщает, есть ли действующая подписка на план. Имя плана сравнивается точно, с учётом регистра.
// @Tags Subscriptions
// @Produce  json
// @Param plan query string true "Название плана"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse "Не указан план"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /subscriptions/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plan := r.URL.Query().Get("plan")
	if plan == "" {
		log.Info("plan query param is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("plan query param is required"))
		return
	}

	active, err := h.service.IsActive(r.Context(), plan)
	if err != nil {
		log.Error("failed to check subscription status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check subscription status"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"plan_name": plan,
		"active":    active,
	}))
}
