package repository

import (
	"context"
	"time"

	"optigest/internal/dto"
	"optigest/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoRepository interface {
	CreateTx(tx *gorm.DB, p *model.PedidoLaboratorio) error
	FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.PedidoLaboratorio, error)
	List(ctx context.Context, opticaID string, f dto.PedidoFilter) ([]model.PedidoLaboratorio, int64, error)
	UpdateEstado(ctx context.Context, opticaID string, id uuid.UUID, estado string) error
	UpdateCabecera(ctx context.Context, opticaID string, id uuid.UUID, updates map[string]interface{}) error
	// RegistrarRecepcionTx stamps the reception exactly once; the WHERE
	// fecha_recepcion IS NULL guard makes a concurrent double-receive lose.
	RegistrarRecepcionTx(tx *gorm.DB, opticaID string, id uuid.UUID, fecha time.Time, estado string, nroOrdenLab, observaciones *string) (int64, error)
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) CreateTx(tx *gorm.DB, p *model.PedidoLaboratorio) error {
	err := tx.Create(p).Error
	if isUniqueViolation(err, "uq_pedidos_optica_nro_orden") {
		return errNroOrdenDuplicado
	}
	return err
}

func (r *pedidoRepo) FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.PedidoLaboratorio, error) {
	var p model.PedidoLaboratorio
	err := r.db.WithContext(ctx).
		Preload("Detalles.Insumo").
		Preload("Proveedor").
		Preload("Receta").
		Where("id = ? AND optica_id = ?", id, opticaID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var pedidoOrderCols = map[string]string{
	"id":                 "id",
	"fecha_envio":        "fecha_envio",
	"fecha_estimada_rec": "fecha_estimada_rec",
	"fecha_recepcion":    "fecha_recepcion",
	"estado":             "estado",
	"nro_orden_lab":      "nro_orden_lab",
	"proveedor_id":       "proveedor_id",
	"receta_id":          "receta_id",
}

func (r *pedidoRepo) List(ctx context.Context, opticaID string, f dto.PedidoFilter) ([]model.PedidoLaboratorio, int64, error) {
	col, dir, err := orderClause(pedidoOrderCols, f.OrderBy, f.OrderDir)
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&model.PedidoLaboratorio{}).Where("optica_id = ?", opticaID)

	if f.Q != "" {
		like := "%" + f.Q + "%"
		q = q.Where("estado ILIKE ? OR nro_orden_lab ILIKE ? OR observaciones ILIKE ?", like, like, like)
	}
	if f.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", f.ProveedorID)
	}
	if f.RecetaID != "" {
		q = q.Where("receta_id = ?", f.RecetaID)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", model.NormalizarEstado(f.Estado))
	}
	if f.FechaDesde != "" {
		q = q.Where("fecha_envio >= ?", f.FechaDesde)
	}
	if f.FechaHasta != "" {
		q = q.Where("fecha_envio <= ?", f.FechaHasta)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pedidos []model.PedidoLaboratorio
	err = q.Preload("Proveedor").
		Order(col + " " + dir).Order("id DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) UpdateEstado(ctx context.Context, opticaID string, id uuid.UUID, estado string) error {
	res := r.db.WithContext(ctx).Model(&model.PedidoLaboratorio{}).
		Where("id = ? AND optica_id = ?", id, opticaID).
		Update("estado", estado)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pedidoRepo) UpdateCabecera(ctx context.Context, opticaID string, id uuid.UUID, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.PedidoLaboratorio{}).
		Where("id = ? AND optica_id = ?", id, opticaID).
		Updates(updates)
	if res.Error != nil {
		if isUniqueViolation(res.Error, "uq_pedidos_optica_nro_orden") {
			return errNroOrdenDuplicado
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pedidoRepo) RegistrarRecepcionTx(tx *gorm.DB, opticaID string, id uuid.UUID, fecha time.Time, estado string, nroOrdenLab, observaciones *string) (int64, error) {
	updates := map[string]interface{}{
		"fecha_recepcion": fecha,
		"estado":          estado,
	}
	if nroOrdenLab != nil {
		updates["nro_orden_lab"] = nroOrdenLab
	}
	if observaciones != nil {
		updates["observaciones"] = observaciones
	}
	res := tx.Model(&model.PedidoLaboratorio{}).
		Where("id = ? AND optica_id = ? AND fecha_recepcion IS NULL", id, opticaID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
