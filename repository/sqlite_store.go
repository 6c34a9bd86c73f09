package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"loan-decision/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id       TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	segment           TEXT NOT NULL,
	employment_status TEXT NOT NULL,
	age               INTEGER
);

CREATE TABLE IF NOT EXISTS financials (
	customer_id    TEXT PRIMARY KEY,
	monthly_income REAL,
	existing_debt  REAL,
	credit_score   INTEGER,
	FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
);

CREATE TABLE IF NOT EXISTS decisions (
	id               TEXT PRIMARY KEY,
	customer_id      TEXT NOT NULL,
	requested_amount REAL NOT NULL,
	approve          INTEGER NOT NULL,
	decision_json    TEXT NOT NULL,
	created_at       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_customer ON decisions(customer_id, created_at);
`

// createdAtLayout is fixed width so created_at sorts chronologically as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

//go:embed seed.sql
var defaultSeed string

// SQLiteStore is the demo bank database. It implements both
// ProfileRepository and DecisionRepository.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath and creates the schema.
// Pragmas go in the DSN so every pooled connection gets them.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Seed loads demo customers when the customers table is empty. An empty
// seedPath uses the built-in data set.
func (s *SQLiteStore) Seed(ctx context.Context, seedPath string) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&count); err != nil {
		return false, fmt.Errorf("count customers: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	script := defaultSeed
	if seedPath != "" {
		raw, err := os.ReadFile(seedPath)
		if err != nil {
			return false, fmt.Errorf("read seed file: %w", err)
		}
		script = string(raw)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return false, fmt.Errorf("apply seed: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) GetProfile(ctx context.Context, customerID string) (domain.CustomerProfile, error) {
	var (
		p   domain.CustomerProfile
		age sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT customer_id, name, segment, employment_status, age
		 FROM customers WHERE customer_id = ?`, customerID,
	).Scan(&p.CustomerID, &p.Name, &p.Segment, &p.EmploymentStatus, &age)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CustomerProfile{}, fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
	}
	if err != nil {
		return domain.CustomerProfile{}, fmt.Errorf("query profile: %w", err)
	}
	p.Age = int(age.Int64)
	return p, nil
}

func (s *SQLiteStore) GetFinancials(ctx context.Context, customerID string) (domain.FinancialSnapshot, error) {
	var (
		income, debt sql.NullFloat64
		score        sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT monthly_income, existing_debt, credit_score
		 FROM financials WHERE customer_id = ?`, customerID,
	).Scan(&income, &debt, &score)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FinancialSnapshot{}, nil
	}
	if err != nil {
		return domain.FinancialSnapshot{}, fmt.Errorf("query financials: %w", err)
	}

	var fin domain.FinancialSnapshot
	if income.Valid {
		fin.MonthlyIncome = &income.Float64
	}
	if debt.Valid {
		fin.ExistingDebt = &debt.Float64
	}
	if score.Valid {
		v := int(score.Int64)
		fin.CreditScore = &v
	}
	return fin, nil
}

func (s *SQLiteStore) Save(ctx context.Context, record domain.AuditRecord) error {
	decisionJSON, err := json.Marshal(record.Decision)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO decisions (id, customer_id, requested_amount, approve, decision_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.CustomerID, record.RequestedAmount, record.Decision.Approve,
		string(decisionJSON), record.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// List returns a customer's decisions, most recent first.
func (s *SQLiteStore) List(ctx context.Context, customerID string) ([]domain.AuditRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, customer_id, requested_amount, decision_json, created_at
		 FROM decisions WHERE customer_id = ?
		 ORDER BY created_at DESC, rowid DESC`, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var (
			rec          domain.AuditRecord
			decisionJSON string
			createdAt    string
		)
		if err := rows.Scan(&rec.ID, &rec.CustomerID, &rec.RequestedAmount, &decisionJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if err := json.Unmarshal([]byte(decisionJSON), &rec.Decision); err != nil {
			return nil, fmt.Errorf("unmarshal decision: %w", err)
		}
		rec.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Health pings the database.
func (s *SQLiteStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
