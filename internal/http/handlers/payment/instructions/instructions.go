// Package instructions реализует HTTP-обработчик, отдающий реквизиты
// для ручной оплаты через Till Number.
package instructions

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/VictonicTechnologies/thegurutips/internal/http/response"
)

// Handler отдаёт инструкции по оплате.
type Handler struct {
	log        *slog.Logger
	tillNumber string
}

// New создает новый Handler с номером Till из конфига.
func New(log *slog.Logger, tillNumber string) *Handler {
	return &Handler{
		log:        log,
		tillNumber: tillNumber,
	}
}

// ServeHTTP godoc
// @Summary Реквизиты ручной оплаты
// @Description Возвращает Till Number и шаги оплаты через Lipa na M-PESA.
// @Tags Payments
// @Produce  json
// @Success 200 {object} map[string]any
// @Router /payments/instructions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"till_number": h.tillNumber,
		"steps": []string{
			"Open M-PESA on your phone",
			"Select Lipa na M-PESA",
			"Choose Buy Goods and Services",
			"Enter the till number",
			"Enter the package amount",
			"Enter your M-PESA PIN and confirm",
			"Copy the confirmation message you receive",
			"Paste the message and validate",
		},
	}))
}
