package finance

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/currency"
)

var (
	ErrEmptyName          = errors.New("name must not be empty")
	ErrInvalidAmount      = errors.New("amount is not a number")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrUnknownRecordKind  = errors.New("unknown record kind")
	ErrRecordDoesNotExist = errors.New("record does not exist")
)

// ParseAmount parses a user supplied amount. Both "12.5" and "12,5" are accepted.
func ParseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, ErrInvalidAmount
	}
	return val, nil
}

func validateCommon(name, curr string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if !currency.Valid(curr) {
		return errors.Wrap(ErrInvalidCurrency, curr)
	}
	return nil
}

func validatePositive(name string, amount float64, curr string) error {
	if err := validateCommon(name, curr); err != nil {
		return err
	}
	if !(amount > 0) || math.IsInf(amount, 0) {
		return ErrNonPositiveAmount
	}
	return nil
}

// ValidateAccount allows negative balances, they represent debt.
func ValidateAccount(a Account) error {
	if math.IsNaN(a.Amount) || math.IsInf(a.Amount, 0) {
		return ErrInvalidAmount
	}
	return validateCommon(a.Name, a.Currency)
}

func ValidateIncome(i IncomeSource) error {
	return validatePositive(i.Name, i.Amount, i.Currency)
}

func ValidatePayment(p MonthlyPayment) error {
	return validatePositive(p.Name, p.Amount, p.Currency)
}

func ValidateExpense(e Expense) error {
	return validatePositive(e.Name, e.Amount, e.Currency)
}
