package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre
// PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = "id, product_id, quantity, unit_price, created_at, updated_at"

// GetByID obtiene un item por ID. Devuelve (nil, nil) si no existe.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetForUpdate obtiene el item bloqueando la fila (SELECT FOR UPDATE).
// Devuelve (nil, nil) si no existe; en ese caso no queda nada bloqueado.
func (r *InventoryItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items WHERE id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

// Save inserta o actualiza el item. El ID (uuid) y los timestamps se asignan
// aquí, en un solo lugar: created_at solo en el insert, updated_at siempre.
func (r *InventoryItemRepo) Save(item *entity.InventoryItem) (*entity.InventoryItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_items (id, product_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (id)
		DO UPDATE SET product_id = EXCLUDED.product_id, quantity = EXCLUDED.quantity,
		              unit_price = EXCLUDED.unit_price, updated_at = now()
		RETURNING ` + itemColumns
	saved, err := r.scanOne(r.q.QueryRow(context.Background(), query,
		item.ID, item.ProductID, item.Quantity, item.UnitPrice), "save item")
	if err != nil {
		return nil, err
	}
	*item = *saved
	return item, nil
}

// Update cambia product_id y unit_price por id. El UPDATE no incluye la
// columna quantity, así que una cantidad obsoleta en el payload nunca pisa
// un delta confirmado por otra transacción. Devuelve (nil, nil) si el item
// no existe.
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET product_id = $2, unit_price = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + itemColumns
	return r.scanOne(r.q.QueryRow(context.Background(), query,
		item.ID, item.ProductID, item.UnitPrice), "update item")
}

// Delete borra el item. No toca el libro de cambios (sin cascade).
func (r *InventoryItemRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByProductIDs lista items cuyo product_id esté en la lista, paginado.
func (r *InventoryItemRepo) ListByProductIDs(productIDs []string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items WHERE product_id = ANY($1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productIDs, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *InventoryItemRepo) scanOne(row pgx.Row, op string) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}
