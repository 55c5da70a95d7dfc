package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"bijoux-catalog/internal/models"
)

// ErrNotFound is returned when a menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// MenuStore is what the HTTP layer needs from persistence.
type MenuStore interface {
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context, activeOnly bool) ([]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

type Storage struct {
	pool *pgxpool.Pool
	db   *sql.DB // For migrations
}

var _ MenuStore = (*Storage)(nil)

func NewStorage(dsn string) (*Storage, error) {
	const op = "storage.NewStorage"

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return &Storage{pool: pool, db: db}, nil
}

func (s *Storage) Close() {
	s.db.Close()
	s.pool.Close()
}

const menuItemColumns = `id, name, slug, description, type, target_type,
	category_id, collection_id, signature_piece_id, parent_id, level,
	country, language, tags, is_active, sort_order, icon, image,
	created_at, updated_at`

func (s *Storage) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	const op = "storage.CreateMenuItem"

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO menu_items (`+menuItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		item.ID, item.Name, item.Slug, item.Description, item.Type, item.TargetType,
		item.CategoryID, item.CollectionID, item.SignaturePieceID, item.ParentID, item.Level,
		item.Country, item.Language, item.Tags, item.IsActive, item.Order, item.Icon, item.Image,
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}

func (s *Storage) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	const op = "storage.GetMenuItem"

	row := s.pool.QueryRow(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return item, nil
}

func (s *Storage) ListMenuItems(ctx context.Context, activeOnly bool) ([]models.MenuItem, error) {
	const op = "storage.ListMenuItems"

	query := `SELECT ` + menuItemColumns + ` FROM menu_items`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY level, sort_order, name`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return items, nil
}

func (s *Storage) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	const op = "storage.UpdateMenuItem"

	item.UpdatedAt = time.Now().UTC()

	tag, err := s.pool.Exec(ctx,
		`UPDATE menu_items SET name = $2, slug = $3, description = $4, type = $5,
		target_type = $6, category_id = $7, collection_id = $8, signature_piece_id = $9,
		parent_id = $10, level = $11, country = $12, language = $13, tags = $14,
		is_active = $15, sort_order = $16, icon = $17, image = $18, updated_at = $19
		WHERE id = $1`,
		item.ID, item.Name, item.Slug, item.Description, item.Type,
		item.TargetType, item.CategoryID, item.CollectionID, item.SignaturePieceID,
		item.ParentID, item.Level, item.Country, item.Language, item.Tags,
		item.IsActive, item.Order, item.Icon, item.Image, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Storage) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	const op = "storage.DeleteMenuItem"

	tag, err := s.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	var item models.MenuItem
	err := row.Scan(&item.ID, &item.Name, &item.Slug, &item.Description, &item.Type,
		&item.TargetType, &item.CategoryID, &item.CollectionID, &item.SignaturePieceID,
		&item.ParentID, &item.Level, &item.Country, &item.Language, &item.Tags,
		&item.IsActive, &item.Order, &item.Icon, &item.Image,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
