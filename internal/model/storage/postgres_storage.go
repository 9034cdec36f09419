package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/logger"
)

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=disable"

const (
	accountsTable = "accounts"
	incomesTable  = "incomes"
	paymentsTable = "payments"
	expensesTable = "expenses"
	settingsTable = "settings"

	displayCurrencyKey = "display_currency"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type config interface {
	Host() string
	Username() string
	Password() string
	Database() string
}

type PostgresStorage struct {
	db *sql.DB
}

// plainRow is the common shape of accounts, incomes and payments.
type plainRow struct {
	ID       string
	Name     string
	Amount   float64
	Currency string
}

func NewPostgresStorage(config config) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	return &PostgresStorage{db}, nil
}

func (s *PostgresStorage) Close() {
	if err := s.db.Close(); err != nil {
		logger.Error("error closing database", zap.Error(err))
	}
}

func (s *PostgresStorage) Records(ctx context.Context) (finance.Records, error) {
	var (
		res finance.Records
		err error
	)
	if res.Accounts, err = s.ListAccounts(ctx); err != nil {
		return finance.Records{}, err
	}
	if res.Incomes, err = s.ListIncomes(ctx); err != nil {
		return finance.Records{}, err
	}
	if res.Payments, err = s.ListPayments(ctx); err != nil {
		return finance.Records{}, err
	}
	if res.Expenses, err = s.ListExpenses(ctx); err != nil {
		return finance.Records{}, err
	}
	return res, nil
}

func (s *PostgresStorage) ListAccounts(ctx context.Context) ([]finance.Account, error) {
	rows, err := s.listPlain(ctx, accountsTable)
	if err != nil {
		return nil, errors.Wrap(err, "list accounts")
	}
	res := make([]finance.Account, 0, len(rows))
	for _, r := range rows {
		res = append(res, finance.Account(r))
	}
	return res, nil
}

func (s *PostgresStorage) SaveAccount(ctx context.Context, rec finance.Account) error {
	return errors.Wrap(s.savePlain(ctx, accountsTable, plainRow(rec)), "save account")
}

func (s *PostgresStorage) DeleteAccount(ctx context.Context, id string) error {
	return errors.Wrap(s.delete(ctx, accountsTable, id), "delete account")
}

func (s *PostgresStorage) ListIncomes(ctx context.Context) ([]finance.IncomeSource, error) {
	rows, err := s.listPlain(ctx, incomesTable)
	if err != nil {
		return nil, errors.Wrap(err, "list incomes")
	}
	res := make([]finance.IncomeSource, 0, len(rows))
	for _, r := range rows {
		res = append(res, finance.IncomeSource(r))
	}
	return res, nil
}

func (s *PostgresStorage) SaveIncome(ctx context.Context, rec finance.IncomeSource) error {
	return errors.Wrap(s.savePlain(ctx, incomesTable, plainRow(rec)), "save income")
}

func (s *PostgresStorage) DeleteIncome(ctx context.Context, id string) error {
	return errors.Wrap(s.delete(ctx, incomesTable, id), "delete income")
}

func (s *PostgresStorage) ListPayments(ctx context.Context) ([]finance.MonthlyPayment, error) {
	rows, err := s.listPlain(ctx, paymentsTable)
	if err != nil {
		return nil, errors.Wrap(err, "list payments")
	}
	res := make([]finance.MonthlyPayment, 0, len(rows))
	for _, r := range rows {
		res = append(res, finance.MonthlyPayment(r))
	}
	return res, nil
}

func (s *PostgresStorage) SavePayment(ctx context.Context, rec finance.MonthlyPayment) error {
	return errors.Wrap(s.savePlain(ctx, paymentsTable, plainRow(rec)), "save payment")
}

func (s *PostgresStorage) DeletePayment(ctx context.Context, id string) error {
	return errors.Wrap(s.delete(ctx, paymentsTable, id), "delete payment")
}

func (s *PostgresStorage) ListExpenses(ctx context.Context) ([]finance.Expense, error) {
	query := psql.Select("id", "name", "amount", "currency", "category", "created_at").
		From(expensesTable).
		OrderBy("position")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list expenses")
	}
	defer closeRows(rows)

	exps := make([]finance.Expense, 0)
	for rows.Next() {
		var e finance.Expense
		err = rows.Scan(&e.ID, &e.Name, &e.Amount, &e.Currency, &e.Category, &e.Created)
		if err != nil {
			return nil, errors.Wrap(err, "list expenses")
		}
		exps = append(exps, e)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list expenses")
	}
	return exps, nil
}

func (s *PostgresStorage) SaveExpense(ctx context.Context, rec finance.Expense) error {
	query := psql.Insert(expensesTable).
		Columns("id", "name", "amount", "currency", "category", "created_at").
		Values(rec.ID, rec.Name, rec.Amount, rec.Currency, rec.Category, rec.Created).
		Suffix("ON CONFLICT(id) DO UPDATE SET name = EXCLUDED.name, amount = EXCLUDED.amount, " +
			"currency = EXCLUDED.currency, category = EXCLUDED.category, created_at = EXCLUDED.created_at")

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "save expense")
}

func (s *PostgresStorage) DeleteExpense(ctx context.Context, id string) error {
	return errors.Wrap(s.delete(ctx, expensesTable, id), "delete expense")
}

func (s *PostgresStorage) GetDisplayCurrency(ctx context.Context) (string, error) {
	query := psql.Select("value").
		From(settingsTable).
		Where(sq.Eq{"key": displayCurrencyKey})

	var curr string
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&curr)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "get display currency")
	}
	return curr, nil
}

func (s *PostgresStorage) SaveDisplayCurrency(ctx context.Context, code string) error {
	query := psql.Insert(settingsTable).
		Columns("key", "value").
		Values(displayCurrencyKey, code).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()")

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "save display currency")
}

func (s *PostgresStorage) listPlain(ctx context.Context, table string) ([]plainRow, error) {
	query := psql.Select("id", "name", "amount", "currency").
		From(table).
		OrderBy("position")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	res := make([]plainRow, 0)
	for rows.Next() {
		var r plainRow
		if err = rows.Scan(&r.ID, &r.Name, &r.Amount, &r.Currency); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

func (s *PostgresStorage) savePlain(ctx context.Context, table string, r plainRow) error {
	query := psql.Insert(table).
		Columns("id", "name", "amount", "currency").
		Values(r.ID, r.Name, r.Amount, r.Currency).
		Suffix("ON CONFLICT(id) DO UPDATE SET name = EXCLUDED.name, amount = EXCLUDED.amount, currency = EXCLUDED.currency")

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return err
}

func (s *PostgresStorage) delete(ctx context.Context, table, id string) error {
	query := psql.Delete(table).Where(sq.Eq{"id": id})

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return finance.ErrRecordDoesNotExist
	}
	return nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logger.Error("error closing rows", zap.Error(err))
	}
}
