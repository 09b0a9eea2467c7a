package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"optigest/internal/apierror"
	"optigest/internal/dto"
	"optigest/internal/model"
	"optigest/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecetaService interface {
	Crear(ctx context.Context, opticaID string, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error)
	ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.RecetaResponse, error)
	Listar(ctx context.Context, opticaID string, f dto.RecetaFilter) (*dto.RecetaListResponse, error)
	Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error)
	ActualizarEstado(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarEstadoRecetaRequest) (*dto.RecetaResponse, error)
}

type recetaService struct {
	repo        repository.RecetaRepository
	clienteRepo repository.ClienteRepository
}

func NewRecetaService(repo repository.RecetaRepository, clienteRepo repository.ClienteRepository) RecetaService {
	return &recetaService{repo: repo, clienteRepo: clienteRepo}
}

// estadoRecetaONada normalizes and validates an optional caller-supplied
// state, falling back to def when absent or blank.
func estadoRecetaONada(raw *string, def string) (string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return def, nil
	}
	estado := model.NormalizarEstado(*raw)
	if !model.EstadoRecetaValido(estado) {
		return "", apierror.Invalid("Estado de receta inválido: %q. Opciones: %s",
			*raw, strings.Join(model.EstadosReceta(), ", "))
	}
	return estado, nil
}

func (s *recetaService) Crear(ctx context.Context, opticaID string, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.Invalid("cliente_id inválido")
	}
	if _, err := s.clienteRepo.FindActivo(ctx, opticaID, clienteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Invalid("El cliente indicado no existe o está inactivo en esta óptica")
		}
		return nil, err
	}

	estado, err := estadoRecetaONada(req.Estado, model.RecetaActiva)
	if err != nil {
		return nil, err
	}

	hoy := time.Now().Truncate(24 * time.Hour)
	rec := model.Receta{
		OpticaID:         opticaID,
		ClienteID:        clienteID,
		FechaReceta:      parseFecha(req.FechaReceta),
		Profesional:      req.Profesional,
		TipoLente:        req.TipoLente,
		ODEsfera:         req.ODEsfera,
		ODCilindro:       req.ODCilindro,
		ODEje:            req.ODEje,
		OIEsfera:         req.OIEsfera,
		OICilindro:       req.OICilindro,
		OIEje:            req.OIEje,
		Adicion:          req.Adicion,
		DP:               req.DP,
		Observaciones:    req.Observaciones,
		Estado:           estado,
		FechaCreacionReg: &hoy,
	}
	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, err
	}
	return recetaToResponse(&rec), nil
}

func (s *recetaService) ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.RecetaResponse, error) {
	rec, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Receta no encontrada")
		}
		return nil, err
	}
	return recetaToResponse(rec), nil
}

func (s *recetaService) Listar(ctx context.Context, opticaID string, f dto.RecetaFilter) (*dto.RecetaListResponse, error) {
	if f.Estado != "" {
		f.Estado = model.NormalizarEstado(f.Estado)
	}
	recetas, total, err := s.repo.List(ctx, opticaID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecetaListItem, 0, len(recetas))
	for i := range recetas {
		rec := &recetas[i]
		item := dto.RecetaListItem{
			ID:            rec.ID.String(),
			ClienteID:     rec.ClienteID.String(),
			FechaReceta:   fmtFecha(rec.FechaReceta),
			Profesional:   rec.Profesional,
			TipoLente:     rec.TipoLente,
			Estado:        rec.Estado,
			Observaciones: rec.Observaciones,
		}
		if rec.Cliente != nil {
			item.ClienteNombre = rec.Cliente.Nombre
			item.ClienteApellido = rec.Cliente.Apellido
		}
		items = append(items, item)
	}
	return &dto.RecetaListResponse{Total: total, Limit: f.Limit, Offset: f.Offset, Items: items}, nil
}

func (s *recetaService) Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error) {
	rec, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Receta no encontrada")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Profesional != nil {
		updates["profesional"] = req.Profesional
	}
	if req.TipoLente != nil {
		updates["tipo_lente"] = req.TipoLente
	}
	if req.ODEsfera != nil {
		updates["od_esfera"] = req.ODEsfera
	}
	if req.ODCilindro != nil {
		updates["od_cilindro"] = req.ODCilindro
	}
	if req.ODEje != nil {
		updates["od_eje"] = req.ODEje
	}
	if req.OIEsfera != nil {
		updates["oi_esfera"] = req.OIEsfera
	}
	if req.OICilindro != nil {
		updates["oi_cilindro"] = req.OICilindro
	}
	if req.OIEje != nil {
		updates["oi_eje"] = req.OIEje
	}
	if req.Adicion != nil {
		updates["adicion"] = req.Adicion
	}
	if req.DP != nil {
		updates["dp"] = req.DP
	}
	if req.Observaciones != nil {
		updates["observaciones"] = req.Observaciones
	}
	if req.Estado != nil {
		estado, err := estadoRecetaONada(req.Estado, rec.Estado)
		if err != nil {
			return nil, err
		}
		updates["estado"] = estado
	}

	if len(updates) == 0 {
		return recetaToResponse(rec), nil
	}
	if err := s.repo.UpdateCampos(ctx, opticaID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Receta no encontrada")
		}
		return nil, err
	}

	rec, err = s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		return nil, err
	}
	return recetaToResponse(rec), nil
}

func (s *recetaService) ActualizarEstado(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarEstadoRecetaRequest) (*dto.RecetaResponse, error) {
	estado := model.NormalizarEstado(req.Estado)
	if !model.EstadoRecetaValido(estado) {
		return nil, apierror.Invalid("Estado de receta inválido: %q. Opciones: %s",
			req.Estado, strings.Join(model.EstadosReceta(), ", "))
	}

	updates := map[string]interface{}{"estado": estado}
	if req.Observaciones != nil {
		updates["observaciones"] = req.Observaciones
	}
	if err := s.repo.UpdateCampos(ctx, opticaID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Receta no encontrada")
		}
		return nil, err
	}

	rec, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		return nil, err
	}
	return recetaToResponse(rec), nil
}

func recetaToResponse(r *model.Receta) *dto.RecetaResponse {
	return &dto.RecetaResponse{
		ID:            r.ID.String(),
		ClienteID:     r.ClienteID.String(),
		FechaReceta:   fmtFecha(r.FechaReceta),
		Profesional:   r.Profesional,
		TipoLente:     r.TipoLente,
		ODEsfera:      r.ODEsfera,
		ODCilindro:    r.ODCilindro,
		ODEje:         r.ODEje,
		OIEsfera:      r.OIEsfera,
		OICilindro:    r.OICilindro,
		OIEje:         r.OIEje,
		Adicion:       r.Adicion,
		DP:            r.DP,
		Observaciones: r.Observaciones,
		Estado:        r.Estado,
	}
}
