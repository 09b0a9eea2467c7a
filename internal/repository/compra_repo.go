package repository

import (
	"context"
	"time"

	"optigest/internal/dto"
	"optigest/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompraRepository interface {
	// CreateTx persists header + lines in the caller's transaction.
	CreateTx(tx *gorm.DB, c *model.CompraInsumo) error
	FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.CompraInsumo, error)
	List(ctx context.Context, opticaID string, f dto.CompraFilter) ([]model.CompraInsumo, int64, error)
	// UpdateCabecera patches header fields; the WHERE anulada = false guard
	// makes the voided-immutability check race-free. Returns rows affected.
	UpdateCabecera(ctx context.Context, opticaID string, id uuid.UUID, updates map[string]interface{}) (int64, error)
	// MarcarAnuladaTx flips the voided flag exactly once (guarded the same way).
	MarcarAnuladaTx(tx *gorm.DB, opticaID string, id uuid.UUID, motivo *string, ts time.Time) (int64, error)
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) CreateTx(tx *gorm.DB, c *model.CompraInsumo) error {
	return tx.Create(c).Error
}

func (r *compraRepo) FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.CompraInsumo, error) {
	var c model.CompraInsumo
	err := r.db.WithContext(ctx).
		Preload("Detalles.Insumo").
		Where("id = ? AND optica_id = ?", id, opticaID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

var compraOrderCols = map[string]string{
	"fecha_compra": "fecha_compra",
	"monto_total":  "monto_total",
	"id":           "id",
}

func (r *compraRepo) List(ctx context.Context, opticaID string, f dto.CompraFilter) ([]model.CompraInsumo, int64, error) {
	col, dir, err := orderClause(compraOrderCols, f.OrderBy, f.OrderDir)
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&model.CompraInsumo{}).Where("optica_id = ?", opticaID)

	if f.Q != "" {
		like := "%" + f.Q + "%"
		q = q.Where("tipo_comprobante ILIKE ? OR nro_comprobante ILIKE ? OR observaciones ILIKE ?",
			like, like, like)
	}
	if f.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", f.ProveedorID)
	}
	if f.Anulada != nil {
		q = q.Where("anulada = ?", *f.Anulada)
	}
	if f.FechaDesde != "" {
		q = q.Where("fecha_compra >= ?", f.FechaDesde)
	}
	if f.FechaHasta != "" {
		q = q.Where("fecha_compra <= ?", f.FechaHasta)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var compras []model.CompraInsumo
	err = q.Order(col + " " + dir).Order("id DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&compras).Error
	return compras, total, err
}

func (r *compraRepo) UpdateCabecera(ctx context.Context, opticaID string, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CompraInsumo{}).
		Where("id = ? AND optica_id = ? AND anulada = false", id, opticaID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *compraRepo) MarcarAnuladaTx(tx *gorm.DB, opticaID string, id uuid.UUID, motivo *string, ts time.Time) (int64, error) {
	res := tx.Model(&model.CompraInsumo{}).
		Where("id = ? AND optica_id = ? AND anulada = false", id, opticaID).
		Updates(map[string]interface{}{
			"anulada":          true,
			"motivo_anulacion": motivo,
			"fecha_anulacion":  ts,
		})
	return res.RowsAffected, res.Error
}

func (r *compraRepo) DB() *gorm.DB { return r.db }
