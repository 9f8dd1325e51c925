package records

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"orlof/pkg/identity"
	"orlof/pkg/platform/sentinel"
)

// Postgres persists record snapshots in PostgreSQL. Replace runs in one
// transaction that truncates and refills all four tables, so readers on
// other connections never see a partially loaded snapshot (the swap is the
// transaction commit). Insertion order is preserved through an explicit
// position column because first-loaded-wins lookups depend on it.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the record tables if they do not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS registry_entries (
			pos INT NOT NULL,
			identity_number TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			spouse TEXT NOT NULL DEFAULT '',
			spouse_identity_number TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS registry_entries_identity_idx ON registry_entries (identity_number, pos);

		CREATE TABLE IF NOT EXISTS income_entries (
			pos INT NOT NULL,
			identity_number TEXT NOT NULL,
			personal_tax_discount_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
			month_income DOUBLE PRECISION NOT NULL DEFAULT 0,
			other_month_income DOUBLE PRECISION NOT NULL DEFAULT 0,
			pension_savings_percent DOUBLE PRECISION NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS income_entries_identity_idx ON income_entries (identity_number, pos);

		CREATE TABLE IF NOT EXISTS birth_estimates (
			pos INT NOT NULL,
			parent_identity_number TEXT NOT NULL,
			estimated_birth_date TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS birth_estimates_parent_idx ON birth_estimates (parent_identity_number, pos);

		CREATE TABLE IF NOT EXISTS child_entries (
			pos INT NOT NULL,
			name TEXT NOT NULL,
			identity_number TEXT NOT NULL,
			parent_identity_number TEXT NOT NULL,
			birth_date TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS child_entries_parent_idx ON child_entries (parent_identity_number, pos);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure records schema: %w", err)
	}
	return nil
}

// Replace atomically swaps in a complete snapshot.
func (s *Postgres) Replace(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`TRUNCATE registry_entries, income_entries, birth_estimates, child_entries`); err != nil {
		return fmt.Errorf("truncate record tables: %w", err)
	}

	for i, e := range snap.Registry {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO registry_entries (pos, identity_number, name, address, spouse, spouse_identity_number)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			i, e.IdentityNumber, e.Name, e.Address, e.Spouse, e.SpouseIdentityNumber); err != nil {
			return fmt.Errorf("insert registry entry: %w", err)
		}
	}
	for i, e := range snap.Incomes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO income_entries (pos, identity_number, personal_tax_discount_percent, month_income, other_month_income, pension_savings_percent)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			i, e.IdentityNumber, e.PersonalTaxDiscountPercent, e.MonthIncome, e.OtherMonthIncome, e.PensionSavingsPercent); err != nil {
			return fmt.Errorf("insert income entry: %w", err)
		}
	}
	for i, e := range snap.BirthEstimates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO birth_estimates (pos, parent_identity_number, estimated_birth_date)
			 VALUES ($1, $2, $3)`,
			i, e.ParentIdentityNumber, e.EstimatedBirthDate); err != nil {
			return fmt.Errorf("insert birth estimate: %w", err)
		}
	}
	for i, e := range snap.Children {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO child_entries (pos, name, identity_number, parent_identity_number, birth_date)
			 VALUES ($1, $2, $3, $4, $5)`,
			i, e.Name, e.IdentityNumber, e.ParentIdentityNumber, e.BirthDate); err != nil {
			return fmt.Errorf("insert child entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (s *Postgres) Registry(ctx context.Context) ([]RegistryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT identity_number, name, address, spouse, spouse_identity_number
		 FROM registry_entries ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("list registry entries: %w", err)
	}
	defer rows.Close()

	var out []RegistryEntry
	for rows.Next() {
		var e RegistryEntry
		if err := rows.Scan(&e.IdentityNumber, &e.Name, &e.Address, &e.Spouse, &e.SpouseIdentityNumber); err != nil {
			return nil, fmt.Errorf("scan registry entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Postgres) Incomes(ctx context.Context) ([]IncomeEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT identity_number, personal_tax_discount_percent, month_income, other_month_income, pension_savings_percent
		 FROM income_entries ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("list income entries: %w", err)
	}
	defer rows.Close()

	var out []IncomeEntry
	for rows.Next() {
		var e IncomeEntry
		if err := rows.Scan(&e.IdentityNumber, &e.PersonalTaxDiscountPercent, &e.MonthIncome, &e.OtherMonthIncome, &e.PensionSavingsPercent); err != nil {
			return nil, fmt.Errorf("scan income entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Postgres) BirthEstimates(ctx context.Context) ([]EstimatedBirthEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT parent_identity_number, estimated_birth_date FROM birth_estimates ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("list birth estimates: %w", err)
	}
	defer rows.Close()

	var out []EstimatedBirthEntry
	for rows.Next() {
		var e EstimatedBirthEntry
		if err := rows.Scan(&e.ParentIdentityNumber, &e.EstimatedBirthDate); err != nil {
			return nil, fmt.Errorf("scan birth estimate: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Postgres) Children(ctx context.Context) ([]ChildEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, identity_number, parent_identity_number, birth_date FROM child_entries ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("list child entries: %w", err)
	}
	defer rows.Close()

	var out []ChildEntry
	for rows.Next() {
		var e ChildEntry
		if err := rows.Scan(&e.Name, &e.IdentityNumber, &e.ParentIdentityNumber, &e.BirthDate); err != nil {
			return nil, fmt.Errorf("scan child entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Postgres) FindRegistryByIdentity(ctx context.Context, id string) (*RegistryEntry, error) {
	key := identity.Normalize(id)
	if key == "" {
		return nil, sentinel.ErrNotFound
	}
	var e RegistryEntry
	err := s.db.QueryRowContext(ctx,
		`SELECT identity_number, name, address, spouse, spouse_identity_number
		 FROM registry_entries WHERE identity_number = $1 ORDER BY pos LIMIT 1`, key).
		Scan(&e.IdentityNumber, &e.Name, &e.Address, &e.Spouse, &e.SpouseIdentityNumber)
	if err == sql.ErrNoRows {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find registry entry: %w", err)
	}
	return &e, nil
}

func (s *Postgres) FindIncomeByIdentity(ctx context.Context, id string) (*IncomeEntry, error) {
	key := identity.Normalize(id)
	if key == "" {
		return nil, sentinel.ErrNotFound
	}
	var e IncomeEntry
	err := s.db.QueryRowContext(ctx,
		`SELECT identity_number, personal_tax_discount_percent, month_income, other_month_income, pension_savings_percent
		 FROM income_entries WHERE identity_number = $1 ORDER BY pos LIMIT 1`, key).
		Scan(&e.IdentityNumber, &e.PersonalTaxDiscountPercent, &e.MonthIncome, &e.OtherMonthIncome, &e.PensionSavingsPercent)
	if err == sql.ErrNoRows {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find income entry: %w", err)
	}
	return &e, nil
}

func (s *Postgres) FindBirthEstimateByParent(ctx context.Context, id string) (*EstimatedBirthEntry, error) {
	key := identity.Normalize(id)
	if key == "" {
		return nil, sentinel.ErrNotFound
	}
	var e EstimatedBirthEntry
	err := s.db.QueryRowContext(ctx,
		`SELECT parent_identity_number, estimated_birth_date
		 FROM birth_estimates WHERE parent_identity_number = $1 ORDER BY pos LIMIT 1`, key).
		Scan(&e.ParentIdentityNumber, &e.EstimatedBirthDate)
	if err == sql.ErrNoRows {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find birth estimate: %w", err)
	}
	return &e, nil
}

func (s *Postgres) FindChildByParent(ctx context.Context, id string) (*ChildEntry, error) {
	key := identity.Normalize(id)
	if key == "" {
		return nil, sentinel.ErrNotFound
	}
	var e ChildEntry
	err := s.db.QueryRowContext(ctx,
		`SELECT name, identity_number, parent_identity_number, birth_date
		 FROM child_entries WHERE parent_identity_number = $1 ORDER BY pos LIMIT 1`, key).
		Scan(&e.Name, &e.IdentityNumber, &e.ParentIdentityNumber, &e.BirthDate)
	if err == sql.ErrNoRows {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find child entry: %w", err)
	}
	return &e, nil
}
