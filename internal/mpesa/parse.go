// Package mpesa разбирает вставленные пользователем сообщения с подтверждением
// оплаты M-PESA: извлекает код подтверждения и сумму, сверяет сумму с ценой
// тарифного плана. Пакет не имеет состояния и не обращается к хранилищу —
// проверка повторного использования кода лежит на вызывающей стороне.
package mpesa

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/VictonicTechnologies/thegurutips/internal/models"
)

var (
	// ErrMalformedMessage — в тексте не нашлось кода подтверждения или суммы.
	ErrMalformedMessage = errors.New("invalid m-pesa message format")
	// ErrAmountMismatch — сумма в сообщении не совпала с ценой плана.
	ErrAmountMismatch = errors.New("payment amount does not match the package price")
)

var (
	codeRe   = regexp.MustCompile(`[A-Z0-9]{10}`)
	amountRe = regexp.MustCompile(`Ksh([\d,]+\.?\d*)`)
	priceRe  = regexp.MustCompile(`[^0-9.]`)
)

// Parse извлекает из message код подтверждения (10 символов A-Z0-9) и сумму
// вида Ksh1,500.00, затем сравнивает сумму с числом из expectedPrice.
// Сравнение точное, в десятичной арифметике: обе стороны получаются из
// дискретных денежных значений, допуск не нужен.
func Parse(message, expectedPrice string) (models.ParsedConfirmation, error) {
	const op = "mpesa.Parse"

	code := codeRe.FindString(message)
	if code == "" {
		return models.ParsedConfirmation{}, fmt.Errorf("%s: no transaction code: %w", op, ErrMalformedMessage)
	}

	amountMatch := amountRe.FindStringSubmatch(message)
	if amountMatch == nil {
		return models.ParsedConfirmation{}, fmt.Errorf("%s: no amount: %w", op, ErrMalformedMessage)
	}

	paid, err := decimal.NewFromString(strings.ReplaceAll(amountMatch[1], ",", ""))
	if err != nil {
		return models.ParsedConfirmation{}, fmt.Errorf("%s: bad amount %q: %w", op, amountMatch[1], ErrMalformedMessage)
	}

	expected, err := decimal.NewFromString(priceRe.ReplaceAllString(expectedPrice, ""))
	if err != nil {
		return models.ParsedConfirmation{}, fmt.Errorf("%s: invalid expected price %q", op, expectedPrice)
	}

	if !paid.Equal(expected) {
		return models.ParsedConfirmation{}, fmt.Errorf("%s: paid %s, expected %s: %w",
			op, paid, expected, ErrAmountMismatch)
	}

	return models.ParsedConfirmation{Code: code, Amount: paid}, nil
}
