package messages

import (
	"fmt"
	"strings"

	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/model/convert"
	"max.ks1230/finance-tracker/internal/model/records"
)

const (
	commandParts = 2
	dateLayout   = "02.01.2006"
)

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", commandParts)

	if len(split) == commandParts {
		return split[0], strings.TrimSpace(split[1])
	}
	if strings.HasPrefix(text, "/") {
		return text, ""
	}
	return "", text
}

// parseKind accepts both "expense" and "expenses".
func parseKind(arg string) (string, bool) {
	kind := strings.TrimSuffix(strings.ToLower(arg), "s")
	for _, k := range records.Kinds {
		if k == kind {
			return k, true
		}
	}
	return "", false
}

// displayName turns a single-token name back into words.
func displayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func formatMoney(amount float64, curr string) string {
	return fmt.Sprintf("%.2f %s", amount, curr)
}

// formatConverted shows the amount next to its value in the display currency.
func formatConverted(amount float64, curr, display string, rates *currency.Rates) string {
	res := formatMoney(amount, curr)
	if curr == display {
		return res
	}
	val, ok := convert.ConvertChecked(amount, curr, display, rates)
	if !ok {
		return res + " (not converted)"
	}
	return res + " (" + formatMoney(val, display) + ")"
}
