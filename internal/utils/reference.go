package utils

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"
)

// GenerateReference generates a unique human-readable reference, e.g.
// TXN_20260831_7KQ2M9XA. Used for transactions and balance entries.
func GenerateReference(prefix string) string {
	const charset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789" // no 0/O, 1/I/L
	result := make([]byte, 8)
	for i := range result {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[n.Int64()]
	}

	timestamp := time.Now().Format("20060102")
	return strings.ToUpper(fmt.Sprintf("%s_%s_%s", prefix, timestamp, string(result)))
}

// Round2 rounds a monetary amount to 2 decimal places. All ledger math goes
// through this so repeated credits/debits cannot accumulate drift.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatCurrency formats a float as currency
func FormatCurrency(amount float64, currency string) string {
	switch currency {
	case "USD":
		return fmt.Sprintf("$%.2f", amount)
	case "EUR":
		return fmt.Sprintf("€%.2f", amount)
	default:
		return fmt.Sprintf("%.2f %s", amount, currency)
	}
}

// IsValidEmail checks if an email address is plausibly valid.
func IsValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" {
		return false
	}

	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[len(domainParts)-1] != ""
}
