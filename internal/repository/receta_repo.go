package repository

import (
	"context"

	"optigest/internal/dto"
	"optigest/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecetaRepository interface {
	Create(ctx context.Context, r *model.Receta) error
	FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.Receta, error)
	List(ctx context.Context, opticaID string, f dto.RecetaFilter) ([]model.Receta, int64, error)
	// UpdateCampos applies an allow-listed column map built by the service.
	UpdateCampos(ctx context.Context, opticaID string, id uuid.UUID, updates map[string]interface{}) error
	// UpdateEstadoTx moves the receta state inside the caller's transaction
	// (used when creating a lab order flips ACTIVA → EN_LABORATORIO).
	UpdateEstadoTx(tx *gorm.DB, opticaID string, id uuid.UUID, estado string) error
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) Create(ctx context.Context, rec *model.Receta) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recetaRepo) FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.Receta, error) {
	var rec model.Receta
	err := r.db.WithContext(ctx).
		Where("id = ? AND optica_id = ?", id, opticaID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// recetaOrderCols includes joined cliente columns; the join below constrains
// the cliente to the same tenant so the sort cannot leak foreign rows.
var recetaOrderCols = map[string]string{
	"id":               "recetas.id",
	"fecha_receta":     "recetas.fecha_receta",
	"estado":           "recetas.estado",
	"tipo_lente":       "recetas.tipo_lente",
	"profesional":      "recetas.profesional",
	"cliente_apellido": "clientes.apellido",
	"cliente_nombre":   "clientes.nombre",
	"dni":              "clientes.dni",
}

func (r *recetaRepo) List(ctx context.Context, opticaID string, f dto.RecetaFilter) ([]model.Receta, int64, error) {
	col, dir, err := orderClause(recetaOrderCols, f.OrderBy, f.OrderDir)
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&model.Receta{}).
		Joins("JOIN clientes ON clientes.id = recetas.cliente_id AND clientes.optica_id = recetas.optica_id").
		Where("recetas.optica_id = ?", opticaID)

	if f.ClienteID != "" {
		q = q.Where("recetas.cliente_id = ?", f.ClienteID)
	}
	if f.DNI != nil {
		q = q.Where("clientes.dni = ?", *f.DNI)
	}
	if f.ActivoCliente != nil {
		q = q.Where("clientes.activo = ?", *f.ActivoCliente)
	}
	if f.Estado != "" {
		q = q.Where("recetas.estado ILIKE ?", f.Estado)
	}
	if f.TipoLente != "" {
		q = q.Where("recetas.tipo_lente ILIKE ?", f.TipoLente)
	}
	if f.Profesional != "" {
		q = q.Where("recetas.profesional ILIKE ?", f.Profesional)
	}
	if f.FechaDesde != "" {
		q = q.Where("recetas.fecha_receta >= ?", f.FechaDesde)
	}
	if f.FechaHasta != "" {
		q = q.Where("recetas.fecha_receta <= ?", f.FechaHasta)
	}
	if f.Q != "" {
		like := "%" + f.Q + "%"
		q = q.Where(
			"clientes.nombre ILIKE ? OR clientes.apellido ILIKE ? OR recetas.profesional ILIKE ? OR recetas.tipo_lente ILIKE ? OR recetas.estado ILIKE ? OR recetas.observaciones ILIKE ?",
			like, like, like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recetas []model.Receta
	err = q.Preload("Cliente").
		Order(col + " " + dir).Order("recetas.id DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&recetas).Error
	return recetas, total, err
}

func (r *recetaRepo) UpdateCampos(ctx context.Context, opticaID string, id uuid.UUID, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Receta{}).
		Where("id = ? AND optica_id = ?", id, opticaID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recetaRepo) UpdateEstadoTx(tx *gorm.DB, opticaID string, id uuid.UUID, estado string) error {
	return tx.Model(&model.Receta{}).
		Where("id = ? AND optica_id = ?", id, opticaID).
		Update("estado", estado).Error
}
