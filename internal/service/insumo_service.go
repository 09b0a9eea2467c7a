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

type InsumoService interface {
	Crear(ctx context.Context, opticaID string, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error)
	ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.InsumoResponse, error)
	Listar(ctx context.Context, opticaID string, f dto.InsumoFilter) (*dto.InsumoListResponse, error)
	Select(ctx context.Context, opticaID string, proveedorID *uuid.UUID, q string) ([]dto.InsumoSelectItem, error)
	Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error)
	Eliminar(ctx context.Context, opticaID string, id uuid.UUID) error
}

type insumoService struct {
	repo          repository.InsumoRepository
	proveedorRepo repository.ProveedorRepository
	cache         *cache.Cache
}

func NewInsumoService(repo repository.InsumoRepository, proveedorRepo repository.ProveedorRepository, c *cache.Cache) InsumoService {
	return &insumoService{repo: repo, proveedorRepo: proveedorRepo, cache: c}
}

// resolveProveedor validates that a supplier reference belongs to the tenant
// and is active. A foreign or missing supplier is a client input error, not a
// not-found: the insumo endpoints never expose other tenants' suppliers.
func (s *insumoService) resolveProveedor(ctx context.Context, opticaID string, raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	pid, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apierror.Invalid("proveedor_id inválido")
	}
	if _, err := s.proveedorRepo.FindActivo(ctx, opticaID, pid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Invalid("El proveedor indicado no existe o está inactivo en esta óptica")
		}
		return nil, err
	}
	return &pid, nil
}

func (s *insumoService) Crear(ctx context.Context, opticaID string, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	proveedorID, err := s.resolveProveedor(ctx, opticaID, req.ProveedorID)
	if err != nil {
		return nil, err
	}

	i := model.Insumo{
		OpticaID:        opticaID,
		Descripcion:     req.Descripcion,
		TipoInsumo:      req.TipoInsumo,
		ProveedorID:     proveedorID,
		CodigoProveedor: req.CodigoProveedor,
		CodigoInterno:   req.CodigoInterno,
		PrecioCosto:     req.PrecioCosto,
		PrecioSugerido:  req.PrecioSugerido,
		StockMinimo:     req.StockMinimo,
		StockActual:     req.StockActual,
		Activo:          true,
	}
	if err := s.repo.Create(ctx, &i); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, selectKeyInsumos(opticaID))
	return insumoToResponse(&i), nil
}

func (s *insumoService) ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.InsumoResponse, error) {
	i, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Insumo no encontrado")
		}
		return nil, err
	}
	return insumoToResponse(i), nil
}

func (s *insumoService) Listar(ctx context.Context, opticaID string, f dto.InsumoFilter) (*dto.InsumoListResponse, error) {
	insumos, total, err := s.repo.List(ctx, opticaID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InsumoResponse, 0, len(insumos))
	for i := range insumos {
		items = append(items, *insumoToResponse(&insumos[i]))
	}
	return &dto.InsumoListResponse{Total: total, Limit: f.Limit, Offset: f.Offset, Items: items}, nil
}

func selectKeyInsumos(opticaID string) string {
	return "select:insumos:" + opticaID
}

func (s *insumoService) Select(ctx context.Context, opticaID string, proveedorID *uuid.UUID, q string) ([]dto.InsumoSelectItem, error) {
	// Stock figures ride along in this quick-pick, so only the unfiltered
	// variant is cached and its TTL is short (see config.CacheTTL).
	cacheable := q == "" && proveedorID == nil
	key := selectKeyInsumos(opticaID)
	if cacheable {
		var cached []dto.InsumoSelectItem
		if s.cache.GetJSON(ctx, key, &cached) {
			return cached, nil
		}
	}

	insumos, err := s.repo.Select(ctx, opticaID, proveedorID, q, selectLimit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InsumoSelectItem, 0, len(insumos))
	for i := range insumos {
		in := &insumos[i]
		label := in.Descripcion
		if in.CodigoInterno != nil {
			label = *in.CodigoInterno + " · " + label
		}
		items = append(items, dto.InsumoSelectItem{
			ID:          in.ID.String(),
			Label:       label,
			StockActual: in.StockActual,
			PrecioCosto: in.PrecioCosto,
		})
	}
	if cacheable {
		s.cache.SetJSON(ctx, key, items)
	}
	return items, nil
}

func (s *insumoService) Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	i, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Insumo no encontrado")
		}
		return nil, err
	}

	if req.ProveedorID != nil {
		proveedorID, err := s.resolveProveedor(ctx, opticaID, req.ProveedorID)
		if err != nil {
			return nil, err
		}
		i.ProveedorID = proveedorID
	}
	if req.Descripcion != nil {
		i.Descripcion = *req.Descripcion
	}
	if req.TipoInsumo != nil {
		i.TipoInsumo = req.TipoInsumo
	}
	if req.CodigoProveedor != nil {
		i.CodigoProveedor = req.CodigoProveedor
	}
	if req.CodigoInterno != nil {
		i.CodigoInterno = req.CodigoInterno
	}
	if req.PrecioCosto != nil {
		i.PrecioCosto = req.PrecioCosto
	}
	if req.PrecioSugerido != nil {
		i.PrecioSugerido = req.PrecioSugerido
	}
	if req.StockMinimo != nil {
		i.StockMinimo = req.StockMinimo
	}
	if req.Activo != nil {
		i.Activo = *req.Activo
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, selectKeyInsumos(opticaID))
	return insumoToResponse(i), nil
}

func (s *insumoService) Eliminar(ctx context.Context, opticaID string, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, opticaID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Insumo no encontrado")
		}
		return err
	}
	s.cache.Invalidate(ctx, selectKeyInsumos(opticaID))
	return nil
}

func insumoToResponse(i *model.Insumo) *dto.InsumoResponse {
	var proveedorID *string
	if i.ProveedorID != nil {
		s := i.ProveedorID.String()
		proveedorID = &s
	}
	return &dto.InsumoResponse{
		ID:              i.ID.String(),
		Descripcion:     i.Descripcion,
		TipoInsumo:      i.TipoInsumo,
		ProveedorID:     proveedorID,
		CodigoProveedor: i.CodigoProveedor,
		CodigoInterno:   i.CodigoInterno,
		PrecioCosto:     i.PrecioCosto,
		PrecioSugerido:  i.PrecioSugerido,
		StockMinimo:     i.StockMinimo,
		StockActual:     i.StockActual,
		StockBajo:       i.StockBajo(),
		Activo:          i.Activo,
	}
}
