package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.QuantityChangeRepository = (*QuantityChangeRepo)(nil)

// QuantityChangeRepo implementación del libro de cambios sobre PostgreSQL
// (usable con pool o tx). La tabla es insert-only; la primary key sobre id
// es la que hace cumplir la idempotencia ante inserts concurrentes.
type QuantityChangeRepo struct {
	q Querier
}

// NewQuantityChangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuantityChangeRepository(q Querier) *QuantityChangeRepo {
	return &QuantityChangeRepo{q: q}
}

// GetByID obtiene un registro por su clave de idempotencia. (nil, nil) si no existe.
func (r *QuantityChangeRepo) GetByID(id string) (*entity.QuantityChange, error) {
	query := `
		SELECT id, inventory_item_id, quantity_change, created_at
		FROM quantity_changes WHERE id = $1`
	var c entity.QuantityChange
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.InventoryItemID, &c.QuantityChange, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quantity change: %w", err)
	}
	return &c, nil
}

// Exists verifica si la clave de idempotencia ya está registrada.
func (r *QuantityChangeRepo) Exists(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM quantity_changes WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists quantity change: %w", err)
	}
	return exists, nil
}

// Create inserta el registro estampando created_at aquí, en el punto de
// insert. Si el id ya existe devuelve domain.ErrDuplicate.
func (r *QuantityChangeRepo) Create(change *entity.QuantityChange) error {
	if change.CreatedAt.IsZero() {
		change.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO quantity_changes (id, inventory_item_id, quantity_change, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		change.ID, change.InventoryItemID, change.QuantityChange, change.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create quantity change: %w", err)
	}
	return nil
}

// ListByItem lista el historial de cambios de un item, más reciente primero.
func (r *QuantityChangeRepo) ListByItem(inventoryItemID string, limit, offset int) ([]*entity.QuantityChange, error) {
	query := `
		SELECT id, inventory_item_id, quantity_change, created_at
		FROM quantity_changes WHERE inventory_item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, inventoryItemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list changes by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuantityChange
	for rows.Next() {
		var c entity.QuantityChange
		if err := rows.Scan(&c.ID, &c.InventoryItemID, &c.QuantityChange, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quantity change: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
