package finance

import "time"

// UncategorizedCategory collects expenses with no category.
const UncategorizedCategory = "Uncategorized"

// DefaultCategory is given to an expense saved without a category.
const DefaultCategory = "Other"

// Categories are suggested to the user. Any other category is accepted too.
var Categories = []string{"Groceries", "Transport", "Entertainment", "Health", "Shopping", DefaultCategory}

// Monetary is the shape shared by every record the tracker sums up.
type Monetary interface {
	GetAmount() float64
	GetCurrency() string
}

type Account struct {
	ID       string
	Name     string
	Amount   float64
	Currency string
}

func (a Account) GetAmount() float64  { return a.Amount }
func (a Account) GetCurrency() string { return a.Currency }

type IncomeSource struct {
	ID       string
	Name     string
	Amount   float64
	Currency string
}

func (i IncomeSource) GetAmount() float64  { return i.Amount }
func (i IncomeSource) GetCurrency() string { return i.Currency }

type MonthlyPayment struct {
	ID       string
	Name     string
	Amount   float64
	Currency string
}

func (p MonthlyPayment) GetAmount() float64  { return p.Amount }
func (p MonthlyPayment) GetCurrency() string { return p.Currency }

type Expense struct {
	ID       string
	Name     string
	Amount   float64
	Currency string
	Category string
	Created  time.Time
}

func (e Expense) GetAmount() float64  { return e.Amount }
func (e Expense) GetCurrency() string { return e.Currency }

// Records is a read-only snapshot of every list the tracker keeps.
type Records struct {
	Accounts []Account
	Incomes  []IncomeSource
	Payments []MonthlyPayment
	Expenses []Expense
}
