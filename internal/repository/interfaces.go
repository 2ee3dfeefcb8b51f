package repository

import (
	"context"
	"errors"
	"time"

	"github.com/salesops/segmatrix/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// MatrixRecord is one stored matrix version: the authored source document,
// its compiled rules, and the content fingerprint that identifies the
// version regardless of which file it was loaded from.
type MatrixRecord struct {
	ID          string
	Name        string
	Version     string
	Fingerprint string
	// Source is the authored matrix document (YAML), kept verbatim so the
	// editable form can always be recovered from the store.
	Source     string
	IsValid    bool
	CreatedAt  time.Time
	DeployedAt *time.Time
	RuleSet    domain.RuleSet
}

// Deployed reports whether this version is the live one.
func (r *MatrixRecord) Deployed() bool {
	return r.DeployedAt != nil
}

type MatrixRepo interface {
	// Save stores a matrix version with its compiled rules, transactionally.
	Save(ctx context.Context, rec *MatrixRecord) error
	GetByID(ctx context.Context, id string) (*MatrixRecord, error)
	GetByVersion(ctx context.Context, name, version string) (*MatrixRecord, error)
	GetByFingerprint(ctx context.Context, fingerprint string) (*MatrixRecord, error)
	List(ctx context.Context) ([]*MatrixRecord, error)
	// Deployed returns the single live version, or ErrNotFound.
	Deployed(ctx context.Context) (*MatrixRecord, error)
	// Deploy marks the given version live and retires any other. It fails
	// for a version whose validation did not pass.
	Deploy(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
