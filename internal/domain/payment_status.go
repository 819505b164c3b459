package domain

import (
	"errors"
	"strings"
)

type PaymentStatus string

// remember to add new statuses to the validPaymentStatuses map
const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

var validPaymentStatuses = map[PaymentStatus]struct{}{
	PaymentStatusPending:  {},
	PaymentStatusPaid:     {},
	PaymentStatusFailed:   {},
	PaymentStatusRefunded: {},
}

// processor wording accepted from clients
var paymentStatusAliases = map[string]PaymentStatus{
	"":          PaymentStatusPending,
	"succeeded": PaymentStatusPaid,
	"completed": PaymentStatusPaid,
	"canceled":  PaymentStatusFailed,
	"cancelled": PaymentStatusFailed,
}

func ToPaymentStatus(s string) (PaymentStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	if alias, ok := paymentStatusAliases[normalized]; ok {
		return alias, nil
	}

	status := PaymentStatus(normalized)
	if _, ok := validPaymentStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid payment status")
}
