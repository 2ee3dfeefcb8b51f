package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/salesops/segmatrix/internal/domain"
)

// SQLiteMatrixRepo implements MatrixRepo using a SQLite database. Unbounded
// rule maxima are stored as NULL.
type SQLiteMatrixRepo struct {
	db *sql.DB
}

// NewSQLiteMatrixRepo creates a new SQLiteMatrixRepo.
func NewSQLiteMatrixRepo(db *sql.DB) *SQLiteMatrixRepo {
	return &SQLiteMatrixRepo{db: db}
}

func (r *SQLiteMatrixRepo) Save(ctx context.Context, rec *MatrixRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting save transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO matrices (id, name, version, fingerprint, source, is_valid, created_at, deployed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Name,
		rec.Version,
		rec.Fingerprint,
		rec.Source,
		boolToInt(rec.IsValid),
		rec.CreatedAt.Format(time.RFC3339),
		nullableTimeToString(rec.DeployedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting matrix %s@%s: %w", rec.Name, rec.Version, err)
	}

	for i, rule := range rec.RuleSet.Rules {
		var eMax interface{}
		if !rule.EmployeeUnbounded() {
			eMax = rule.EmployeeMax
		}
		var gMax interface{}
		if !rule.GMVUnbounded() {
			gMax = rule.GMVMax
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO segment_rules (matrix_id, idx, employee_min, employee_max, gmv_min, gmv_max, segment)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, i, rule.EmployeeMin, eMax, rule.GMVMin, gMax, string(rule.Segment),
		)
		if err != nil {
			return fmt.Errorf("inserting rule %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing matrix save: %w", err)
	}
	committed = true
	return nil
}

const matrixColumns = `id, name, version, fingerprint, source, is_valid, created_at, deployed_at`

func (r *SQLiteMatrixRepo) GetByID(ctx context.Context, id string) (*MatrixRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+matrixColumns+` FROM matrices WHERE id = ?`, id)
	return r.scanWithRules(ctx, row)
}

func (r *SQLiteMatrixRepo) GetByVersion(ctx context.Context, name, version string) (*MatrixRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+matrixColumns+` FROM matrices WHERE name = ? AND version = ?`, name, version)
	return r.scanWithRules(ctx, row)
}

func (r *SQLiteMatrixRepo) GetByFingerprint(ctx context.Context, fingerprint string) (*MatrixRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+matrixColumns+` FROM matrices WHERE fingerprint = ?`, fingerprint)
	return r.scanWithRules(ctx, row)
}

func (r *SQLiteMatrixRepo) List(ctx context.Context) ([]*MatrixRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+matrixColumns+` FROM matrices ORDER BY created_at, name, version`)
	if err != nil {
		return nil, fmt.Errorf("listing matrices: %w", err)
	}
	defer rows.Close()

	var recs []*MatrixRecord
	for rows.Next() {
		rec, err := scanMatrix(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matrices: %w", err)
	}

	for _, rec := range recs {
		if err := r.loadRules(ctx, rec); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func (r *SQLiteMatrixRepo) Deployed(ctx context.Context) (*MatrixRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+matrixColumns+` FROM matrices WHERE deployed_at IS NOT NULL ORDER BY deployed_at DESC LIMIT 1`)
	return r.scanWithRules(ctx, row)
}

func (r *SQLiteMatrixRepo) Deploy(ctx context.Context, id string, at time.Time) error {
	var isValid int
	err := r.db.QueryRowContext(ctx, `SELECT is_valid FROM matrices WHERE id = ?`, id).Scan(&isValid)
	if err == sql.ErrNoRows {
		return fmt.Errorf("matrix: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("loading matrix validity: %w", err)
	}
	if isValid == 0 {
		return fmt.Errorf("matrix %s failed validation and cannot be deployed", id)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting deploy transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `UPDATE matrices SET deployed_at = NULL WHERE id != ?`, id); err != nil {
		return fmt.Errorf("retiring previous deployment: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE matrices SET deployed_at = ? WHERE id = ?`, at.Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("deploying matrix: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing deploy: %w", err)
	}
	committed = true
	return nil
}

func (r *SQLiteMatrixRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matrices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting matrix: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("matrix: %w", ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatrix(row rowScanner) (*MatrixRecord, error) {
	var rec MatrixRecord
	var isValid int
	var createdAt string
	var deployedAt sql.NullString

	err := row.Scan(&rec.ID, &rec.Name, &rec.Version, &rec.Fingerprint, &rec.Source, &isValid, &createdAt, &deployedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("matrix: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning matrix: %w", err)
	}

	rec.IsValid = isValid != 0
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if deployedAt.Valid {
		t, err := time.Parse(time.RFC3339, deployedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing deployed_at: %w", err)
		}
		rec.DeployedAt = &t
	}
	return &rec, nil
}

func (r *SQLiteMatrixRepo) scanWithRules(ctx context.Context, row rowScanner) (*MatrixRecord, error) {
	rec, err := scanMatrix(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadRules(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteMatrixRepo) loadRules(ctx context.Context, rec *MatrixRecord) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT employee_min, employee_max, gmv_min, gmv_max, segment
		 FROM segment_rules WHERE matrix_id = ? ORDER BY idx`, rec.ID)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rule domain.SegmentRule
		var eMax sql.NullInt64
		var gMax sql.NullFloat64
		var segment string
		if err := rows.Scan(&rule.EmployeeMin, &eMax, &rule.GMVMin, &gMax, &segment); err != nil {
			return fmt.Errorf("scanning rule: %w", err)
		}
		rule.EmployeeMax = domain.UnboundedEmployeeMax
		if eMax.Valid {
			rule.EmployeeMax = int(eMax.Int64)
		}
		rule.GMVMax = math.Inf(1)
		if gMax.Valid {
			rule.GMVMax = gMax.Float64
		}
		rule.Segment = domain.Segment(segment)
		rec.RuleSet.Rules = append(rec.RuleSet.Rules, rule)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rules: %w", err)
	}
	rec.RuleSet.Fingerprint = rec.Fingerprint
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableTimeToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
