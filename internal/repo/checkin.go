// Package repo contains all database access logic for the check-in API.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rmfontes/pousada-checkin/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows
// integration tests to pass a transaction that is rolled back after each
// test, giving free per-test isolation without any manual cleanup.
// Begin on a pgx.Tx opens a savepoint, so Create stays atomic in tests too.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CheckinRepo defines the persistence operations for check-ins and their
// guests. Guests have no standalone lifecycle: they are written only inside
// Create and removed only by the ON DELETE CASCADE on their check-in.
type CheckinRepo interface {
	// Create inserts a check-in and all its guests in a single transaction
	// and returns the persisted aggregate. Guests are stored in slice order;
	// nothing is persisted if any insert fails.
	Create(ctx context.Context, checkin domain.Checkin, guests []domain.Guest) (domain.Checkin, error)

	// GetByID retrieves a check-in with its guests attached.
	// Returns domain.ErrNotFound if no check-in with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Checkin, error)

	// ListActive returns all check-ins with status Ativo, guests attached,
	// in insertion order.
	ListActive(ctx context.Context) ([]domain.Checkin, error)

	// ListFinalized returns finalized check-ins matching the filter, guests
	// attached, ordered by check-in timestamp descending.
	ListFinalized(ctx context.Context, filter domain.HistoryFilter) ([]domain.Checkin, error)

	// Finalize atomically transitions a check-in from Ativo to Finalizado,
	// stamping the checkout time. When the check-in exists but is already
	// finalized, the unchanged record is returned together with
	// domain.ErrAlreadyFinalized. Returns domain.ErrNotFound for unknown ids.
	Finalize(ctx context.Context, id uuid.UUID) (domain.Checkin, error)

	// Delete removes a check-in; its guests go with it via the FK cascade.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgCheckinRepo is the Postgres implementation of CheckinRepo.
type pgCheckinRepo struct {
	db db
}

// NewCheckinRepo constructs a CheckinRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCheckinRepo(db db) CheckinRepo {
	return &pgCheckinRepo{db: db}
}

const checkinColumns = `id, numero_apartamento, data_checkin, data_checkout_prevista, data_checkout, status, created_at, updated_at`

// Create inserts the check-in row and every guest row inside one transaction.
func (r *pgCheckinRepo) Create(ctx context.Context, checkin domain.Checkin, guests []domain.Guest) (domain.Checkin, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Checkin{}, fmt.Errorf("repo.CheckinRepo.Create: begin: %w", err)
	}
	// No-op after a successful commit.
	defer tx.Rollback(ctx) //nolint:errcheck

	const q = `
		INSERT INTO checkins (numero_apartamento, data_checkin, data_checkout_prevista)
		VALUES (@numero_apartamento, COALESCE(@data_checkin, now()), @data_checkout_prevista)
		RETURNING ` + checkinColumns

	args := pgx.NamedArgs{
		"numero_apartamento":     checkin.NumeroApartamento,
		"data_checkin":           nilIfZeroTime(checkin.DataCheckin),
		"data_checkout_prevista": nilIfZeroTime(checkin.DataCheckoutPrevista),
	}

	created, err := scanCheckin(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Checkin{}, fmt.Errorf("repo.CheckinRepo.Create: %w", err)
	}

	for i, g := range guests {
		g.CheckinID = created.ID
		saved, err := insertGuest(ctx, tx, g, i)
		if err != nil {
			return domain.Checkin{}, fmt.Errorf("repo.CheckinRepo.Create: guest %d: %w", i, err)
		}
		created.Hospedes = append(created.Hospedes, saved)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Checkin{}, fmt.Errorf("repo.CheckinRepo.Create: commit: %w", err)
	}
	return created, nil
}

// GetByID retrieves a check-in by primary key, guests attached.
func (r *pgCheckinRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Checkin, error) {
	const q = `
		SELECT ` + checkinColumns + `
		FROM checkins
		WHERE id = @id`

	c, err := scanCheckin(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Checkin{}, fmt.Errorf("repo.CheckinRepo.GetByID: %w", err)
	}

	if err := r.attachGuests(ctx, []*domain.Checkin{&c}); err != nil {
		return domain.Checkin{}, fmt.Errorf("repo.CheckinRepo.GetByID: %w", err)
	}
	return c, nil
}

// ListActive returns all Ativo check-ins in insertion order.
func (r *pgCheckinRepo) ListActive(ctx context.Context) ([]domain.Checkin, error) {
	const q = `
		SELECT ` + checkinColumns + `
		FROM checkins
		WHERE status = 'Ativo'
		ORDER BY created_at`

	checkins, err := r.queryCheckins(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.CheckinRepo.ListActive: %w", err)
	}
	return checkins, nil
}

// ListFinalized returns finalized check-ins matching the filter, newest first.
// The name criterion matches only the principal guest; the date bounds are
// inclusive and compared against data_checkin (both sides cast to date so the
// end bound covers the whole day).
func (r *pgCheckinRepo) ListFinalized(ctx context.Context, filter domain.HistoryFilter) ([]domain.Checkin, error) {
	q := `
		SELECT ` + checkinColumns + `
		FROM checkins c
		WHERE c.status = 'Finalizado'`
	args := pgx.NamedArgs{}

	if filter.Nome != "" {
		q += `
		AND EXISTS (
			SELECT 1 FROM hospedes h
			WHERE h.checkin_id = c.id
			AND   h.is_principal
			AND   h.nome_completo ILIKE '%' || @nome || '%'
		)`
		args["nome"] = filter.Nome
	}
	if filter.DataInicio != nil {
		q += `
		AND c.data_checkin >= @data_inicio`
		args["data_inicio"] = *filter.DataInicio
	}
	if filter.DataFim != nil {
		q += `
		AND c.data_checkin::date <= (@data_fim)::date`
		args["data_fim"] = *filter.DataFim
	}
	q += `
		ORDER BY c.data_checkin DESC`

	checkins, err := r.queryCheckins(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.CheckinRepo.ListFinalized: %w", err)
	}
	return checkins, nil
}

// Finalize performs the Ativo → Finalizado transition as one conditional
// update, so two concurrent calls on the same id cannot both finalize: the
// loser of the race sees zero affected rows and gets ErrAlreadyFinalized.
func (r *pgCheckinRepo) Finalize(ctx context.Context, id uuid.UUID) (domain.Checkin, error) {
	const q = `
		UPDATE checkins
		SET data_checkout = now(),
		    status        = 'Finalizado',
		    updated_at    = now()
		WHERE id = @id AND status = 'Ativo'
		RETURNING ` + checkinColumns

	c, err := scanCheckin(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if errors.Is(err, domain.ErrNotFound) {
		// The conditional update matched nothing: either the id is unknown or
		// the check-in was already finalized. GetByID settles which.
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return domain.Checkin{}, fmt.Errorf("repo.CheckinRepo.Finalize: %w", getErr)
		}
		return existing, fmt.Errorf("repo.CheckinRepo.Finalize: %w", domain.ErrAlreadyFinalized)
	}
	if err != nil {
		return domain.Checkin{}, fmt.Errorf("repo.CheckinRepo.Finalize: %w", err)
	}

	if err := r.attachGuests(ctx, []*domain.Checkin{&c}); err != nil {
		return domain.Checkin{}, fmt.Errorf("repo.CheckinRepo.Finalize: %w", err)
	}
	return c, nil
}

// Delete removes a check-in by primary key. The hospedes FK is declared
// ON DELETE CASCADE, so attached guests are removed in the same statement.
func (r *pgCheckinRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM checkins WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CheckinRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CheckinRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// queryCheckins runs a multi-row checkin query and attaches guests to every
// result with a single follow-up query.
func (r *pgCheckinRepo) queryCheckins(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Checkin, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []domain.Checkin
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		checkins = append(checkins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	refs := make([]*domain.Checkin, len(checkins))
	for i := range checkins {
		refs[i] = &checkins[i]
	}
	if err := r.attachGuests(ctx, refs); err != nil {
		return nil, err
	}
	return checkins, nil
}

// attachGuests loads the guests for every given check-in in one query and
// assigns them in stored order.
func (r *pgCheckinRepo) attachGuests(ctx context.Context, checkins []*domain.Checkin) error {
	if len(checkins) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(checkins))
	byID := make(map[uuid.UUID]*domain.Checkin, len(checkins))
	for i, c := range checkins {
		ids[i] = c.ID
		byID[c.ID] = c
	}

	guests, err := loadGuests(ctx, r.db, ids)
	if err != nil {
		return err
	}
	for _, g := range guests {
		c := byID[g.CheckinID]
		c.Hospedes = append(c.Hospedes, g)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanCheckin to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanCheckin maps a single database row into a domain.Checkin.
// It handles the UUID and nullable date/timestamp conversions.
func scanCheckin(s scanner) (domain.Checkin, error) {
	var (
		c        domain.Checkin
		id       pgtype.UUID
		prevista pgtype.Date
		checkout pgtype.Timestamptz
	)

	err := s.Scan(&id, &c.NumeroApartamento, &c.DataCheckin, &prevista, &checkout, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Checkin{}, domain.ErrNotFound
		}
		return domain.Checkin{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	if prevista.Valid {
		c.DataCheckoutPrevista = prevista.Time
	}
	if checkout.Valid {
		t := checkout.Time
		c.DataCheckout = &t
	}
	return c, nil
}

// nilIfZeroTime converts the zero time into a NULL parameter so column
// defaults (or genuine NULLs) apply.
func nilIfZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
