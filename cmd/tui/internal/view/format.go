package view

import (
	"time"

	"github.com/gfontes/caderneta/internal/money"
)

// FormatAmount renders centavos in the pt-BR money format.
func FormatAmount(cents int64) string {
	return money.BRL(cents)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
