package source

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseDate tries the given layouts in order against a trimmed cell value.
func parseDate(raw string, layouts ...string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range layouts {
		if date, err := time.Parse(layout, cleaned); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", raw)
}

// parseAmount parses an exported amount. The bank export uses a comma as the
// decimal separator ("1234,56"); the invoice workbook uses a plain dot. Both
// may carry grouping spaces or a full "1.234,56" form.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount string")
	}

	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", "")

	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			// Full form: dot groups thousands, comma separates decimals.
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to parse amount: %s", raw)
	}
	return amount, nil
}

// cellString safely extracts a trimmed cell value from a row slice.
func cellString(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
