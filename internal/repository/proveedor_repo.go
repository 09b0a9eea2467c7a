package repository

import (
	"context"

	"optigest/internal/apierror"
	"optigest/internal/dto"
	"optigest/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.Proveedor, error)
	// FindActivo only resolves active suppliers, used when validating
	// cross-entity references from compras / pedidos.
	FindActivo(ctx context.Context, opticaID string, id uuid.UUID) (*model.Proveedor, error)
	List(ctx context.Context, opticaID string, f dto.ProveedorFilter) ([]model.Proveedor, int64, error)
	Select(ctx context.Context, opticaID, q string, limit int) ([]model.Proveedor, error)
	Update(ctx context.Context, p *model.Proveedor) error
	SoftDelete(ctx context.Context, opticaID string, id uuid.UUID) error
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if isUniqueViolation(err, "uq_proveedores_optica_nombre") {
		return apierror.Integrity("Ya existe un proveedor con ese nombre en esta óptica")
	}
	return err
}

func (r *proveedorRepo) FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).
		Where("id = ? AND optica_id = ?", id, opticaID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepo) FindActivo(ctx context.Context, opticaID string, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).
		Where("id = ? AND optica_id = ? AND activo = true", id, opticaID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var proveedorOrderCols = map[string]string{
	"id":       "id",
	"nombre":   "nombre",
	"email":    "email",
	"telefono": "telefono",
}

func (r *proveedorRepo) List(ctx context.Context, opticaID string, f dto.ProveedorFilter) ([]model.Proveedor, int64, error) {
	col, dir, err := orderClause(proveedorOrderCols, f.OrderBy, f.OrderDir)
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("optica_id = ?", opticaID)

	if f.Q != "" {
		like := "%" + f.Q + "%"
		q = q.Where("nombre ILIKE ? OR email ILIKE ? OR telefono ILIKE ? OR direccion ILIKE ?",
			like, like, like, like)
	}
	if f.Activo != nil {
		q = q.Where("activo = ?", *f.Activo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var proveedores []model.Proveedor
	err = q.Order(col + " " + dir).Order("id DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&proveedores).Error
	return proveedores, total, err
}

func (r *proveedorRepo) Select(ctx context.Context, opticaID, search string, limit int) ([]model.Proveedor, error) {
	q := r.db.WithContext(ctx).
		Where("optica_id = ? AND activo = true", opticaID)
	if search != "" {
		q = q.Where("nombre ILIKE ?", "%"+search+"%")
	}
	var proveedores []model.Proveedor
	err := q.Order("nombre ASC").Limit(limit).Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	err := r.db.WithContext(ctx).Save(p).Error
	if isUniqueViolation(err, "uq_proveedores_optica_nombre") {
		return apierror.Integrity("Ya existe un proveedor con ese nombre en esta óptica")
	}
	return err
}

func (r *proveedorRepo) SoftDelete(ctx context.Context, opticaID string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Proveedor{}).
		Where("id = ? AND optica_id = ?", id, opticaID).
		Update("activo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
