// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register the "pgx" database/sql driver

	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/models"
)

const itemsTable = "items"

// postgresRepository is the PostgreSQL-backed implementation of
// [ItemRepository]. IDs come from the table's BIGSERIAL sequence, which is
// monotonic and never reuses values after deletions.
type postgresRepository struct {
	logger *logger.Logger
	db     *sql.DB
	sq     sq.StatementBuilderType
}

// NewConnectPostgres opens a database/sql connection through the pgx stdlib
// driver, verifies it with a ping and returns the handle. Callers run goose
// migrations against the returned *sql.DB before constructing repositories.
func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Msg("connected to database successfully")

	return conn, nil
}

// NewPostgresRepository constructs an [ItemRepository] backed by the given
// database handle.
func NewPostgresRepository(db *sql.DB, log *logger.Logger) ItemRepository {
	log.Debug().Msg("creating postgres item repository")
	return &postgresRepository{
		logger: log,
		db:     db,
		sq:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]models.Item, int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	countQuery, countArgs, err := r.sq.Select("COUNT(*)").From(itemsTable).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*postgresRepository.List").Msg("error counting items")
		return nil, 0, classifyPostgresError(err)
	}

	query, args, err := r.sq.
		Select("id", "name", "description", "created_at").
		From(itemsTable).
		OrderBy("id ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postgresRepository.List").Msg("error listing items")
		return nil, 0, classifyPostgresError(err)
	}
	defer rows.Close()

	items := make([]models.Item, 0, limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			log.Err(err).Str("func", "*postgresRepository.List").Msg("error scanning item row")
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classifyPostgresError(err)
	}

	return items, total, nil
}

func (r *postgresRepository) Get(ctx context.Context, id string) (models.Item, error) {
	numericID, err := parseItemID(id)
	if err != nil {
		return models.Item{}, ErrItemNotFound
	}

	query, args, err := r.sq.
		Select("id", "name", "description", "created_at").
		From(itemsTable).
		Where(sq.Eq{"id": numericID}).
		ToSql()
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanOne(ctx, query, args)
}

func (r *postgresRepository) Create(ctx context.Context, name, description string) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sq.
		Insert(itemsTable).
		Columns("name", "description").
		Values(strings.TrimSpace(name), strings.TrimSpace(description)).
		Suffix("RETURNING id, name, description, created_at").
		ToSql()
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := r.scanOne(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*postgresRepository.Create").Msg("error creating item")
		return models.Item{}, err
	}

	return item, nil
}

func (r *postgresRepository) Update(ctx context.Context, id string, upd models.ItemUpdate) (models.Item, error) {
	numericID, err := parseItemID(id)
	if err != nil {
		return models.Item{}, ErrItemNotFound
	}

	if upd.Name == nil && upd.Description == nil {
		// nothing to merge; return the current record
		return r.Get(ctx, id)
	}

	builder := r.sq.Update(itemsTable).Where(sq.Eq{"id": numericID})
	if upd.Name != nil {
		builder = builder.Set("name", strings.TrimSpace(*upd.Name))
	}
	if upd.Description != nil {
		builder = builder.Set("description", strings.TrimSpace(*upd.Description))
	}

	query, args, err := builder.
		Suffix("RETURNING id, name, description, created_at").
		ToSql()
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanOne(ctx, query, args)
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	numericID, err := parseItemID(id)
	if err != nil {
		return ErrItemNotFound
	}

	query, args, err := r.sq.Delete(itemsTable).Where(sq.Eq{"id": numericID}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyPostgresError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return classifyPostgresError(err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *postgresRepository) Close() error {
	return r.db.Close()
}

// scanOne executes a single-row query and maps sql.ErrNoRows to
// [ErrItemNotFound].
func (r *postgresRepository) scanOne(ctx context.Context, query string, args []any) (models.Item, error) {
	row := r.db.QueryRowContext(ctx, query, args...)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		return models.Item{}, classifyPostgresError(err)
	}

	return item, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var (
		numericID int64
		item      models.Item
		createdAt time.Time
	)
	if err := row.Scan(&numericID, &item.Name, &item.Description, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, err
		}
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	item.ID = strconv.FormatInt(numericID, 10)
	item.CreatedAt = createdAt.UTC()
	return item, nil
}

// parseItemID converts the external string identity to the numeric primary
// key. Non-numeric IDs cannot exist in this backend.
func parseItemID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// classifyPostgresError maps driver-level errors to store sentinels using
// the SQLSTATE code when one is available.
func classifyPostgresError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrItemAlreadyExists
		case pgerrcode.NoDataFound:
			return ErrItemNotFound
		}
	}

	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
