package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the reference data CRUD surface shared by the simple catalog
// entities.
type Store[T any] interface {
	List(ctx context.Context, where query.Where, page query.Page) ([]T, int, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id int64, item *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// entity describes how one table maps onto a domain type.
type entity[T any] struct {
	name    string
	table   string
	columns string
	from    string
	idCol   string
	orderBy string
	writes  []string
	values  func(*T) []any
	scan    func(pgx.Row) (T, error)
}

func (e entity[T]) selectSQL() string {
	return "SELECT " + e.columns + " " + e.from
}

type PGStore[T any] struct {
	db *pgxpool.Pool
	e  entity[T]
}

func newStore[T any](db *pgxpool.Pool, e entity[T]) *PGStore[T] {
	return &PGStore[T]{db: db, e: e}
}

func (s *PGStore[T]) List(ctx context.Context, where query.Where, page query.Page) ([]T, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, "SELECT count(*) "+s.e.from+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", s.e.table, err)
	}

	sql := s.e.selectSQL() + where.SQL() +
		" ORDER BY " + s.e.orderBy +
		" LIMIT " + where.Placeholder(0) + " OFFSET " + where.Placeholder(1)
	rows, err := s.db.Query(ctx, sql, append(where.Args(), page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query %s: %w", s.e.table, err)
	}
	defer rows.Close()

	items := make([]T, 0, page.Size)
	for rows.Next() {
		item, err := s.e.scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s: %w", s.e.name, err)
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

func (s *PGStore[T]) Get(ctx context.Context, id int64) (*T, error) {
	item, err := s.e.scan(s.db.QueryRow(ctx, s.e.selectSQL()+" WHERE "+s.e.idCol+" = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(s.e.name, id)
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.e.name, err)
	}
	return &item, nil
}

func (s *PGStore[T]) Create(ctx context.Context, item *T) (*T, error) {
	sql := "INSERT INTO " + s.e.table + " (" + strings.Join(s.e.writes, ", ") + ") VALUES (" + placeholders(len(s.e.writes), 1) + ") RETURNING id"
	var id int64
	if err := s.db.QueryRow(ctx, sql, s.e.values(item)...).Scan(&id); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, id)
}

func (s *PGStore[T]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	sets := make([]string, len(s.e.writes))
	for i, col := range s.e.writes {
		sets[i] = col + " = $" + strconv.Itoa(i+1)
	}
	sql := "UPDATE " + s.e.table + " SET " + strings.Join(sets, ", ") + " WHERE id = $" + strconv.Itoa(len(s.e.writes)+1)

	tag, err := s.db.Exec(ctx, sql, append(s.e.values(item), id)...)
	if err != nil {
		return nil, translate(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, notFound(s.e.name, id)
	}
	return s.Get(ctx, id)
}

func (s *PGStore[T]) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM "+s.e.table+" WHERE id = $1", id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(s.e.name, id)
	}
	return nil
}

func placeholders(n, start int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(start+i)
	}
	return strings.Join(parts, ", ")
}

var _ Store[domain.Airport] = (*PGStore[domain.Airport])(nil)
