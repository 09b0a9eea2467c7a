package repository

import (
	"context"

	"optigest/internal/apierror"
	"optigest/internal/dto"
	"optigest/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsumoRepository is the data access contract for supplies. The *Tx methods
// must run inside the caller's transaction: LockByIDTx takes a FOR UPDATE row
// lock so the check-then-write stock sequence serializes per insumo row.
type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.Insumo, error)
	FindActivo(ctx context.Context, opticaID string, id uuid.UUID) (*model.Insumo, error)
	List(ctx context.Context, opticaID string, f dto.InsumoFilter) ([]model.Insumo, int64, error)
	Select(ctx context.Context, opticaID string, proveedorID *uuid.UUID, q string, limit int) ([]model.Insumo, error)
	Update(ctx context.Context, i *model.Insumo) error
	SoftDelete(ctx context.Context, opticaID string, id uuid.UUID) error

	LockByIDTx(tx *gorm.DB, opticaID string, id uuid.UUID) (*model.Insumo, error)
	SetStockTx(tx *gorm.DB, opticaID string, id uuid.UUID, stock int) error
	// SeedPrecioCostoTx sets precio_costo only when it is still unset.
	SeedPrecioCostoTx(tx *gorm.DB, opticaID string, id uuid.UUID, precio decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	err := r.db.WithContext(ctx).Create(i).Error
	if isUniqueViolation(err, "uq_insumos_optica_codigo_interno") {
		return apierror.Integrity("Ya existe un insumo con ese código interno en esta óptica")
	}
	return err
}

func (r *insumoRepo) FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).
		Where("id = ? AND optica_id = ?", id, opticaID).
		First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *insumoRepo) FindActivo(ctx context.Context, opticaID string, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).
		Where("id = ? AND optica_id = ? AND activo = true", id, opticaID).
		First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

var insumoOrderCols = map[string]string{
	"descripcion":     "descripcion",
	"tipo_insumo":     "tipo_insumo",
	"stock_actual":    "stock_actual",
	"stock_minimo":    "stock_minimo",
	"precio_costo":    "precio_costo",
	"precio_sugerido": "precio_sugerido",
	"id":              "id",
	"proveedor_id":    "proveedor_id",
}

func (r *insumoRepo) List(ctx context.Context, opticaID string, f dto.InsumoFilter) ([]model.Insumo, int64, error) {
	col, dir, err := orderClause(insumoOrderCols, f.OrderBy, f.OrderDir)
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&model.Insumo{}).Where("optica_id = ?", opticaID)

	if f.Activo != nil {
		q = q.Where("activo = ?", *f.Activo)
	}
	if f.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", f.ProveedorID)
	}
	if f.TipoInsumo != "" {
		q = q.Where("tipo_insumo ILIKE ?", "%"+f.TipoInsumo+"%")
	}
	if f.ConStockBajo {
		q = q.Where("stock_minimo IS NOT NULL AND stock_actual IS NOT NULL AND stock_actual <= stock_minimo")
	}
	if f.Q != "" {
		like := "%" + f.Q + "%"
		q = q.Where("descripcion ILIKE ? OR tipo_insumo ILIKE ? OR codigo_proveedor ILIKE ? OR codigo_interno ILIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var insumos []model.Insumo
	err = q.Order(col + " " + dir).Order("id DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&insumos).Error
	return insumos, total, err
}

func (r *insumoRepo) Select(ctx context.Context, opticaID string, proveedorID *uuid.UUID, search string, limit int) ([]model.Insumo, error) {
	q := r.db.WithContext(ctx).
		Where("optica_id = ? AND activo = true", opticaID)
	if proveedorID != nil {
		q = q.Where("proveedor_id = ?", *proveedorID)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("descripcion ILIKE ? OR codigo_interno ILIKE ? OR codigo_proveedor ILIKE ?",
			like, like, like)
	}
	var insumos []model.Insumo
	err := q.Order("descripcion ASC").Limit(limit).Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) Update(ctx context.Context, i *model.Insumo) error {
	err := r.db.WithContext(ctx).Save(i).Error
	if isUniqueViolation(err, "uq_insumos_optica_codigo_interno") {
		return apierror.Integrity("Ya existe un insumo con ese código interno en esta óptica")
	}
	return err
}

func (r *insumoRepo) SoftDelete(ctx context.Context, opticaID string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Insumo{}).
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

func (r *insumoRepo) LockByIDTx(tx *gorm.DB, opticaID string, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND optica_id = ?", id, opticaID).
		First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *insumoRepo) SetStockTx(tx *gorm.DB, opticaID string, id uuid.UUID, stock int) error {
	return tx.Model(&model.Insumo{}).
		Where("id = ? AND optica_id = ?", id, opticaID).
		Update("stock_actual", stock).Error
}

func (r *insumoRepo) SeedPrecioCostoTx(tx *gorm.DB, opticaID string, id uuid.UUID, precio decimal.Decimal) error {
	return tx.Model(&model.Insumo{}).
		Where("id = ? AND optica_id = ? AND precio_costo IS NULL", id, opticaID).
		Update("precio_costo", precio).Error
}

func (r *insumoRepo) DB() *gorm.DB { return r.db }
