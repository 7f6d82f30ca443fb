// Package check реализует HTTP-обработчик проверки, был ли код
// подтверждения использован ранее.
package check

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/VictonicTechnologies/thegurutips/internal/http/response"
	"github.com/VictonicTechnologies/thegurutips/internal/lib/sl"
)

var codeRe = regexp.MustCompile(`^[A-Z0-9]{10}$`)

// Handler управляет HTTP-запросами на проверку кода подтверждения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс журнала кодов.
type Service interface {
	IsCodeUsed(ctx context.Context, code string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить код подтверждения
// @Description Сообщает, был ли код подтверждения M-PESA использован ранее.
// @Tags Payments
// @Produce  json
// @Param code query string true "Код подтверждения, 10 символов A-Z0-9"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse "Код не в формате 10 символов A-Z0-9"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /payments/check [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.check"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	code := r.URL.Query().Get("code")
	if !codeRe.MatchString(code) {
		log.Info("bad code format", slog.String("code", code))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("code must be 10 characters A-Z0-9"))
		return
	}

	used, err := h.service.IsCodeUsed(r.Context(), code)
	if err != nil {
		log.Error("failed to check code", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check code"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"code": code,
		"used": used,
	}))
}
