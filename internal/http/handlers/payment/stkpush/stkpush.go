// Package stkpush реализует HTTP-обработчик запроса STK push: проверяет
// номер телефона и имитирует отправку push-уведомления M-PESA.
// Реальной интеграции с платёжным шлюзом нет, подписка этим запросом
// не выдаётся.
package stkpush

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/VictonicTechnologies/thegurutips/internal/http/response"
	"github.com/VictonicTechnologies/thegurutips/internal/lib/sl"
	"github.com/VictonicTechnologies/thegurutips/internal/models"
	"github.com/VictonicTechnologies/thegurutips/internal/mpesa"
)

// Handler управляет HTTP-запросами на STK push.
type Handler struct {
	log      *slog.Logger
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log:      log,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Запросить STK push
// @Description Проверяет кенийский номер телефона и имитирует отправку push-уведомления M-PESA.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.StkPushRequest true "План и номер телефона"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или номер телефона"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /payments/stkpush [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.stkpush"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.StkPushRequest
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

	if !mpesa.ValidPhoneNumber(req.Phone) {
		log.Info("invalid phone number", slog.String("phone", req.Phone))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("please enter a valid kenyan phone number"))
		return
	}

	log.Info("stk push simulated",
		slog.String("plan", req.PlanName),
		slog.String("phone", req.Phone))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "m-pesa push notification sent to your phone",
	}))
}
