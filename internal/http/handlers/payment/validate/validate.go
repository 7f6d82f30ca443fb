// Package validate реализует HTTP-обработчик проверки вставленного
// сообщения с подтверждением оплаты M-PESA.
//
// Handler принимает JSON с названием плана, его ценой и текстом сообщения,
// валидирует запрос, вызывает бизнес-логику проверки и при успехе возвращает
// идентификатор выданной подписки.
package validate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/VictonicTechnologies/thegurutips/internal/http/response"
	"github.com/VictonicTechnologies/thegurutips/internal/ledger"
	"github.com/VictonicTechnologies/thegurutips/internal/lib/sl"
	"github.com/VictonicTechnologies/thegurutips/internal/models"
	"github.com/VictonicTechnologies/thegurutips/internal/mpesa"
	paymentservice "github.com/VictonicTechnologies/thegurutips/internal/services/payment"
)

// Handler управляет HTTP-запросами на проверку оплаты.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики проверки оплаты
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики проверки оплаты.
type Service interface {
	Validate(ctx context.Context, req models.ValidationRequest) (paymentservice.Result, error)
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
// @Summary Проверить оплату M-PESA
// @Description Разбирает вставленное сообщение с подтверждением оплаты, сверяет сумму с ценой плана, отклоняет повторно использованные коды и выдаёт подписку до ближайшей полуночи.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.ValidationRequest true "План, цена и текст сообщения"
// @Success 200 {object} map[string]any "Подписка выдана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или нераспознанное сообщение"
// @Failure 402 {object} response.ErrorResponse "Сумма не совпадает с ценой плана"
// @Failure 409 {object} response.ErrorResponse "Код уже был использован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /payments/validate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.validate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ValidationRequest
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

	res, err := h.service.Validate(r.Context(), req)
	switch {
	case errors.Is(err, mpesa.ErrMalformedMessage):
		log.Info("malformed confirmation message")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid m-pesa message format"))
		return
	case errors.Is(err, mpesa.ErrAmountMismatch):
		log.Info("payment amount mismatch")
		w.WriteHeader(http.StatusPaymentRequired)
		render.JSON(w, r, response.Error("payment amount does not match the package price"))
		return
	case errors.Is(err, ledger.ErrCodeUsed):
		log.Info("transaction code already used")
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("this m-pesa transaction has already been used"))
		return
	case err != nil:
		log.Error("failed to validate payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not validate payment"))
		return
	}

	log.Info("payment accepted",
		slog.String("subscription_id", res.SubscriptionID),
		slog.String("code", res.Confirmation.Code))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscription_id": res.SubscriptionID,
		"code":            res.Confirmation.Code,
		"amount":          res.Confirmation.Amount.String(),
	}))
}
