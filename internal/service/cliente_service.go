package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"optigest/internal/apierror"
	"optigest/internal/cache"
	"optigest/internal/dto"
	"optigest/internal/model"
	"optigest/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const selectLimit = 20

type ClienteService interface {
	Crear(ctx context.Context, opticaID string, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, opticaID string, f dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Select(ctx context.Context, opticaID, q string) ([]dto.SelectItem, error)
	Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, opticaID string, id uuid.UUID) error
}

type clienteService struct {
	repo  repository.ClienteRepository
	cache *cache.Cache
}

func NewClienteService(repo repository.ClienteRepository, c *cache.Cache) ClienteService {
	return &clienteService{repo: repo, cache: c}
}

func (s *clienteService) Crear(ctx context.Context, opticaID string, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	c := model.Cliente{
		OpticaID:        opticaID,
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		DNI:             req.DNI,
		FechaNacimiento: parseFechaPtr(req.FechaNacimiento),
		Telefono:        req.Telefono,
		Email:           req.Email,
		Direccion:       req.Direccion,
		Observaciones:   req.Observaciones,
		FechaAlta:       time.Now().Truncate(24 * time.Hour),
		Activo:          true,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, selectKeyClientes(opticaID))
	return clienteToResponse(&c), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Cliente no encontrado")
		}
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, opticaID string, f dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	clientes, total, err := s.repo.List(ctx, opticaID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{Total: total, Limit: f.Limit, Offset: f.Offset, Items: items}, nil
}

func selectKeyClientes(opticaID string) string {
	return "select:clientes:" + opticaID
}

func (s *clienteService) Select(ctx context.Context, opticaID, q string) ([]dto.SelectItem, error) {
	// Only the unfiltered quick-pick is cached; searches hit the DB directly.
	cacheable := q == ""
	key := selectKeyClientes(opticaID)
	if cacheable {
		var cached []dto.SelectItem
		if s.cache.GetJSON(ctx, key, &cached) {
			return cached, nil
		}
	}

	clientes, err := s.repo.Select(ctx, opticaID, q, selectLimit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SelectItem, 0, len(clientes))
	for i := range clientes {
		c := &clientes[i]
		items = append(items, dto.SelectItem{
			ID:    c.ID.String(),
			Label: fmt.Sprintf("%s, %s (DNI %d)", c.Apellido, c.Nombre, c.DNI),
		})
	}
	if cacheable {
		s.cache.SetJSON(ctx, key, items)
	}
	return items, nil
}

func (s *clienteService) Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Cliente no encontrado")
		}
		return nil, err
	}

	if req.DNI != nil && *req.DNI != c.DNI {
		if existente, err := s.repo.FindByDNI(ctx, opticaID, *req.DNI); err == nil && existente.ID != c.ID {
			return nil, apierror.Integrity("Ya existe un cliente con ese DNI en esta óptica")
		}
		c.DNI = *req.DNI
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		c.Apellido = *req.Apellido
	}
	if req.FechaNacimiento != nil {
		c.FechaNacimiento = parseFechaPtr(req.FechaNacimiento)
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}
	if req.Observaciones != nil {
		c.Observaciones = req.Observaciones
	}
	if req.Activo != nil {
		c.Activo = *req.Activo
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, selectKeyClientes(opticaID))
	return clienteToResponse(c), nil
}

func (s *clienteService) Eliminar(ctx context.Context, opticaID string, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, opticaID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Cliente no encontrado")
		}
		return err
	}
	s.cache.Invalidate(ctx, selectKeyClientes(opticaID))
	return nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:              c.ID.String(),
		Nombre:          c.Nombre,
		Apellido:        c.Apellido,
		DNI:             c.DNI,
		FechaNacimiento: fmtFechaPtr(c.FechaNacimiento),
		Telefono:        c.Telefono,
		Email:           c.Email,
		Direccion:       c.Direccion,
		Observaciones:   c.Observaciones,
		FechaAlta:       fmtFecha(c.FechaAlta),
		Activo:          c.Activo,
	}
}
