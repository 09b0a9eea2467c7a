package repository

import (
	"context"

	"optigest/internal/apierror"
	"optigest/internal/dto"
	"optigest/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClienteRepository defines the data access contract for clients. Every query
// is scoped by optica_id: a row under another tenant is indistinguishable
// from a missing row.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.Cliente, error)
	// FindActivo only resolves active clients, used when validating the
	// cliente reference of a new receta.
	FindActivo(ctx context.Context, opticaID string, id uuid.UUID) (*model.Cliente, error)
	FindByDNI(ctx context.Context, opticaID string, dni int64) (*model.Cliente, error)
	List(ctx context.Context, opticaID string, f dto.ClienteFilter) ([]model.Cliente, int64, error)
	Select(ctx context.Context, opticaID, q string, limit int) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, opticaID string, id uuid.UUID) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if isUniqueViolation(err, "uq_clientes_optica_dni") {
		return apierror.Integrity("Ya existe un cliente con ese DNI en esta óptica")
	}
	return err
}

func (r *clienteRepo) FindByID(ctx context.Context, opticaID string, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("id = ? AND optica_id = ?", id, opticaID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindActivo(ctx context.Context, opticaID string, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("id = ? AND optica_id = ? AND activo = true", id, opticaID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByDNI(ctx context.Context, opticaID string, dni int64) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("optica_id = ? AND dni = ?", opticaID, dni).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// clienteOrderCols is the sort whitelist for the advanced listing; requests
// naming any other column are rejected.
var clienteOrderCols = map[string]string{
	"nombre":     "nombre",
	"apellido":   "apellido",
	"dni":        "dni",
	"fecha_alta": "fecha_alta",
	"id":         "id",
}

func (r *clienteRepo) List(ctx context.Context, opticaID string, f dto.ClienteFilter) ([]model.Cliente, int64, error) {
	col, dir, err := orderClause(clienteOrderCols, f.OrderBy, f.OrderDir)
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("optica_id = ?", opticaID)

	if f.Q != "" {
		like := "%" + f.Q + "%"
		q = q.Where("nombre ILIKE ? OR apellido ILIKE ?", like, like)
	}
	if f.DNI != nil {
		q = q.Where("dni = ?", *f.DNI)
	}
	if f.Activo != nil {
		q = q.Where("activo = ?", *f.Activo)
	}
	if f.FechaDesde != "" {
		q = q.Where("fecha_alta >= ?", f.FechaDesde)
	}
	if f.FechaHasta != "" {
		q = q.Where("fecha_alta <= ?", f.FechaHasta)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clientes []model.Cliente
	err = q.Order(col + " " + dir).
		Order("apellido ASC").Order("nombre ASC").Order("id DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Select(ctx context.Context, opticaID, search string, limit int) ([]model.Cliente, error) {
	q := r.db.WithContext(ctx).
		Where("optica_id = ? AND activo = true", opticaID)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("nombre ILIKE ? OR apellido ILIKE ?", like, like)
	}
	var clientes []model.Cliente
	err := q.Order("apellido ASC").Order("nombre ASC").Limit(limit).Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	err := r.db.WithContext(ctx).Save(c).Error
	if isUniqueViolation(err, "uq_clientes_optica_dni") {
		return apierror.Integrity("Ya existe un cliente con ese DNI en esta óptica")
	}
	return err
}

func (r *clienteRepo) SoftDelete(ctx context.Context, opticaID string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Cliente{}).
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
