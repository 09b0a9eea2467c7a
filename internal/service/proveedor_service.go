package service

import (
	"context"
	"errors"

	"optigest/internal/apierror"
	"optigest/internal/cache"
	"optigest/internal/dto"
	"optigest/internal/model"
	"optigest/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorService interface {
	Crear(ctx context.Context, opticaID string, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, opticaID string, f dto.ProveedorFilter) (*dto.ProveedorListResponse, error)
	Select(ctx context.Context, opticaID, q string) ([]dto.SelectItem, error)
	Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, opticaID string, id uuid.UUID) error
}

type proveedorService struct {
	repo  repository.ProveedorRepository
	cache *cache.Cache
}

func NewProveedorService(repo repository.ProveedorRepository, c *cache.Cache) ProveedorService {
	return &proveedorService{repo: repo, cache: c}
}

func (s *proveedorService) Crear(ctx context.Context, opticaID string, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p := model.Proveedor{
		OpticaID:  opticaID,
		Nombre:    req.Nombre,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, selectKeyProveedores(opticaID))
	return proveedorToResponse(&p), nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Proveedor no encontrado")
		}
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context, opticaID string, f dto.ProveedorFilter) (*dto.ProveedorListResponse, error) {
	proveedores, total, err := s.repo.List(ctx, opticaID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		items = append(items, *proveedorToResponse(&proveedores[i]))
	}
	return &dto.ProveedorListResponse{Total: total, Limit: f.Limit, Offset: f.Offset, Items: items}, nil
}

func selectKeyProveedores(opticaID string) string {
	return "select:proveedores:" + opticaID
}

func (s *proveedorService) Select(ctx context.Context, opticaID, q string) ([]dto.SelectItem, error) {
	cacheable := q == ""
	key := selectKeyProveedores(opticaID)
	if cacheable {
		var cached []dto.SelectItem
		if s.cache.GetJSON(ctx, key, &cached) {
			return cached, nil
		}
	}

	proveedores, err := s.repo.Select(ctx, opticaID, q, selectLimit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SelectItem, 0, len(proveedores))
	for i := range proveedores {
		items = append(items, dto.SelectItem{ID: proveedores[i].ID.String(), Label: proveedores[i].Nombre})
	}
	if cacheable {
		s.cache.SetJSON(ctx, key, items)
	}
	return items, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Proveedor no encontrado")
		}
		return nil, err
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, selectKeyProveedores(opticaID))
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Eliminar(ctx context.Context, opticaID string, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, opticaID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Proveedor no encontrado")
		}
		return err
	}
	s.cache.Invalidate(ctx, selectKeyProveedores(opticaID))
	return nil
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Direccion: p.Direccion,
		Activo:    p.Activo,
	}
}
