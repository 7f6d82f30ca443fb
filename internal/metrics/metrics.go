// Package metrics регистрирует счётчики Prometheus для наблюдения
// за проверкой платежей.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метки исходов проверки платежа.
const (
	ResultAccepted       = "accepted"
	ResultMalformed      = "malformed_message"
	ResultAmountMismatch = "amount_mismatch"
	ResultCodeUsed       = "code_used"
	ResultStorageError   = "storage_error"
)

// ValidationTotal считает попытки проверки платежа по исходам.
var ValidationTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "thegurutips_payment_validation_total",
		Help: "Payment confirmation validation attempts by result.",
	},
	[]string{"result"},
)
