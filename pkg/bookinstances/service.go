package bookinstances

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/uptrace/bun"
)

const dateLayout = "2006-01-02"

type RetrieveBookInstanceOptions struct {
	ID       *int
	UniqueID *uuid.UUID
}

type ListBookInstancesOptions struct {
	Limit  *int
	Offset *int
	BookID *int
	Status *models.LoanStatus

	includeTotal bool
}

type UpdateBookInstanceOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBookInstance registers a copy of a book. A unique id is generated when
// the instance doesn't carry one.
func (svc *Service) CreateBookInstance(ctx context.Context, instance *models.BookInstance) error {
	if instance.UniqueID == uuid.Nil {
		instance.UniqueID = uuid.New()
	}
	if err := validateBookInstance(instance); err != nil {
		return err
	}
	instance.DueBack = truncateDate(instance.DueBack)

	now := time.Now()
	if instance.CreatedAt.IsZero() {
		instance.CreatedAt = now
	}
	instance.UpdatedAt = instance.CreatedAt

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := checkBook(ctx, tx, instance.BookID); err != nil {
			return err
		}

		_, err := tx.
			NewInsert().
			Model(instance).
			Returning("*").
			Exec(ctx)
		return uniqueErr(err, instance.UniqueID)
	})
}

func (svc *Service) RetrieveBookInstance(ctx context.Context, opts RetrieveBookInstanceOptions) (*models.BookInstance, error) {
	instance := &models.BookInstance{}

	q := svc.db.
		NewSelect().
		Model(instance).
		Relation("Book").
		Relation("Book.Author")

	if opts.ID != nil {
		q = q.Where("bi.id = ?", *opts.ID)
	}
	if opts.UniqueID != nil {
		q = q.Where("bi.unique_id = ?", *opts.UniqueID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book instance")
		}
		return nil, errors.WithStack(err)
	}

	return instance, nil
}

func (svc *Service) ListBookInstances(ctx context.Context, opts ListBookInstancesOptions) ([]*models.BookInstance, error) {
	i, _, err := svc.listBookInstancesWithTotal(ctx, opts)
	return i, errors.WithStack(err)
}

func (svc *Service) ListBookInstancesWithTotal(ctx context.Context, opts ListBookInstancesOptions) ([]*models.BookInstance, int, error) {
	opts.includeTotal = true
	return svc.listBookInstancesWithTotal(ctx, opts)
}

func (svc *Service) listBookInstancesWithTotal(ctx context.Context, opts ListBookInstancesOptions) ([]*models.BookInstance, int, error) {
	var instances []*models.BookInstance
	var total int
	var err error

	// SQLite sorts NULLs first, so copies without a due date lead the list.
	q := svc.db.
		NewSelect().
		Model(&instances).
		Relation("Book").
		Relation("Book.Author").
		Order("bi.due_back ASC", "bi.id ASC")

	if opts.BookID != nil {
		q = q.Where("bi.book_id = ?", *opts.BookID)
	}
	if opts.Status != nil {
		q = q.Where("bi.status = ?", *opts.Status)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return instances, total, nil
}

// UpdateBookInstance writes the given columns. Status changes aren't checked
// against the previous status; any of the four codes may follow any other.
func (svc *Service) UpdateBookInstance(ctx context.Context, instance *models.BookInstance, opts UpdateBookInstanceOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}
	if err := validateBookInstance(instance); err != nil {
		return err
	}
	instance.DueBack = truncateDate(instance.DueBack)

	now := time.Now()
	instance.UpdatedAt = now
	columns := append(opts.Columns, "updated_at")

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := checkBook(ctx, tx, instance.BookID); err != nil {
			return err
		}

		res, err := tx.
			NewUpdate().
			Model(instance).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return uniqueErr(err, instance.UniqueID)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errcodes.NotFound("Book instance")
		}
		return nil
	})
}

func (svc *Service) DeleteBookInstance(ctx context.Context, id int) error {
	res, err := svc.db.NewDelete().
		Model((*models.BookInstance)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errcodes.NotFound("Book instance")
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date. The empty string parses to nil so that
// payloads can clear a due date.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, errcodes.ValidationError(fmt.Sprintf("%q should be in the format of YYYY-MM-DD", "due_back"))
	}
	return &t, nil
}

// FormatDate renders a due date as YYYY-MM-DD, or "" when unset.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func validateBookInstance(instance *models.BookInstance) error {
	if instance.BookID == 0 {
		return errcodes.RequiredField("book_id")
	}
	if instance.UniqueID == uuid.Nil {
		return errcodes.RequiredField("unique_id")
	}
	if !instance.Status.Valid() {
		return errcodes.ValidationError(fmt.Sprintf(`"status" must be one of the following: 0, 1, 2, 3 (got %d)`, int(instance.Status)))
	}
	return nil
}

// truncateDate keeps only the calendar date, in UTC, so stored values sort
// correctly as text.
func truncateDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func checkBook(ctx context.Context, db bun.IDB, bookID int) error {
	exists, err := db.NewSelect().
		Model((*models.Book)(nil)).
		Where("b.id = ?", bookID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.UnknownReference("book_id", "book")
	}
	return nil
}

func uniqueErr(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	if database.IsUniqueViolation(err) {
		return errcodes.Conflict(fmt.Sprintf("A book instance with unique ID %s already exists.", id))
	}
	return errors.WithStack(err)
}
