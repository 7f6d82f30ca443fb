// Package grant реализует HTTP-обработчик выдачи подписки без оплаты.
//
// Handler принимает JSON с названием плана, вызывает бизнес-логику выдачи
// и возвращает идентификатор созданной подписки.
package grant

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/VictonicTechnologies/thegurutips/internal/http/response"
	"github.com/VictonicTechnologies/thegurutips/internal/lib/sl"
	"github.com/VictonicTechnologies/thegurutips/internal/models"
)

// Handler управляет HTTP-запросами на выдачу подписок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики выдачи подписки
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс реестра подписок.
type Service interface {
	Grant(ctx context.Context, planName string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Выдать подписку
// @Description Выдаёт подписку на план без проверки оплаты. Подписка действует до ближайшей полуночи.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body models.GrantRequest true "Название плана"
// @Success 200 {object} map[string]any "Идентификатор подписки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.grant"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Grant(r.Context(), req.PlanName)
	if err != nil {
		log.Error("failed to grant subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not grant subscription"))
		return
	}

	log.Info("granted subscription", slog.String("id", id), slog.String("plan", req.PlanName))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
