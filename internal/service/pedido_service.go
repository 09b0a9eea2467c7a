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

type PedidoService interface {
	Crear(ctx context.Context, opticaID string, req dto.CrearPedidoRequest) (*dto.CrearPedidoResponse, error)
	ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, opticaID string, f dto.PedidoFilter) (*dto.PedidoListResponse, error)
	Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error)
	ActualizarEstado(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarEstadoPedidoRequest) (*dto.PedidoResponse, error)
	Recepcionar(ctx context.Context, opticaID string, id uuid.UUID, req dto.RecepcionarPedidoRequest) (*dto.RecepcionResponse, error)
}

type pedidoService struct {
	repo          repository.PedidoRepository
	recetaRepo    repository.RecetaRepository
	insumoRepo    repository.InsumoRepository
	proveedorRepo repository.ProveedorRepository
}

func NewPedidoService(
	repo repository.PedidoRepository,
	recetaRepo repository.RecetaRepository,
	insumoRepo repository.InsumoRepository,
	proveedorRepo repository.ProveedorRepository,
) PedidoService {
	return &pedidoService{repo: repo, recetaRepo: recetaRepo, insumoRepo: insumoRepo, proveedorRepo: proveedorRepo}
}

func estadoPedidoONada(raw *string, def string) (string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return def, nil
	}
	estado := model.NormalizarEstado(*raw)
	if !model.EstadoPedidoValido(estado) {
		return "", apierror.Invalid("Estado de pedido inválido: %q. Opciones: %s",
			*raw, strings.Join(model.EstadosPedido(), ", "))
	}
	return estado, nil
}

// ── Crear ────────────────────────────────────────────────────────────────────
// Creating a lab order never touches stock; supplies are consumed only at
// reception. Creation does move the prescription: an ACTIVA receta flips to
// EN_LABORATORIO in the same transaction.

func (s *pedidoService) Crear(ctx context.Context, opticaID string, req dto.CrearPedidoRequest) (*dto.CrearPedidoResponse, error) {
	recetaID, err := uuid.Parse(req.RecetaID)
	if err != nil {
		return nil, apierror.Invalid("receta_id inválido")
	}
	receta, err := s.recetaRepo.FindByID(ctx, opticaID, recetaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Invalid("La receta indicada no existe en esta óptica")
		}
		return nil, err
	}
	if receta.Estado == model.RecetaAnulada {
		return nil, apierror.Conflict("La receta está anulada; no admite pedidos de laboratorio")
	}

	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, apierror.Invalid("proveedor_id inválido")
	}
	if _, err := s.proveedorRepo.FindActivo(ctx, opticaID, proveedorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Invalid("El proveedor indicado no existe o está inactivo en esta óptica")
		}
		return nil, err
	}

	estado, err := estadoPedidoONada(req.Estado, model.PedidoEnviado)
	if err != nil {
		return nil, err
	}
	if estado == model.PedidoRecibido {
		return nil, apierror.Invalid("Un pedido no puede crearse ya RECIBIDO; use la recepción del pedido")
	}

	vistos := make(map[uuid.UUID]bool, len(req.Items))
	pedido := model.PedidoLaboratorio{
		OpticaID:         opticaID,
		RecetaID:         recetaID,
		ProveedorID:      proveedorID,
		FechaEnvio:       parseFechaPtr(req.FechaEnvio),
		FechaEstimadaRec: parseFechaPtr(req.FechaEstimadaRec),
		Estado:           estado,
		NroOrdenLab:      req.NroOrdenLab,
		Observaciones:    req.Observaciones,
	}
	for _, item := range req.Items {
		insumoID, err := uuid.Parse(item.InsumoID)
		if err != nil {
			return nil, apierror.Invalid("insumo_id inválido: %s", item.InsumoID)
		}
		if vistos[insumoID] {
			return nil, apierror.Invalid("El insumo %s aparece más de una vez en el pedido", item.InsumoID)
		}
		vistos[insumoID] = true

		if item.PrecioUnitario.IsNegative() {
			return nil, apierror.Invalid("precio_unitario no puede ser negativo (insumo %s)", item.InsumoID)
		}
		if _, err := s.insumoRepo.FindActivo(ctx, opticaID, insumoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Invalid("El insumo %s no existe o está inactivo en esta óptica", item.InsumoID)
			}
			return nil, err
		}

		pedido.Detalles = append(pedido.Detalles, model.DetallePedidoLab{
			OpticaID:       opticaID,
			InsumoID:       insumoID,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Observaciones:  item.Observaciones,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &pedido); err != nil {
			return err
		}
		if receta.Estado == model.RecetaActiva {
			return s.recetaRepo.UpdateEstadoTx(tx, opticaID, recetaID, model.RecetaEnLaboratorio)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CrearPedidoResponse{
		ID:            pedido.ID.String(),
		RecetaID:      recetaID.String(),
		ProveedorID:   proveedorID.String(),
		Estado:        pedido.Estado,
		CantidadItems: len(pedido.Detalles),
	}, nil
}

func (s *pedidoService) ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		return nil, err
	}
	return pedidoToResponse(pedido, true), nil
}

func (s *pedidoService) Listar(ctx context.Context, opticaID string, f dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	pedidos, total, err := s.repo.List(ctx, opticaID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		items = append(items, *pedidoToResponse(&pedidos[i], false))
	}
	return &dto.PedidoListResponse{Total: total, Limit: f.Limit, Offset: f.Offset, Items: items}, nil
}

func (s *pedidoService) Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		return nil, err
	}
	if pedido.FechaRecepcion != nil {
		return nil, apierror.Conflict("El pedido ya fue recibido y no admite modificaciones")
	}

	updates := map[string]interface{}{}
	if req.Estado != nil {
		estado, err := estadoPedidoONada(req.Estado, pedido.Estado)
		if err != nil {
			return nil, err
		}
		if estado == model.PedidoRecibido {
			return nil, apierror.Invalid("Para marcar el pedido RECIBIDO use la recepción del pedido")
		}
		updates["estado"] = estado
	}
	if req.NroOrdenLab != nil {
		updates["nro_orden_lab"] = req.NroOrdenLab
	}
	if req.FechaEstimadaRec != nil {
		updates["fecha_estimada_rec"] = parseFecha(*req.FechaEstimadaRec)
	}
	if req.Observaciones != nil {
		updates["observaciones"] = req.Observaciones
	}

	if len(updates) == 0 {
		return nil, apierror.Invalid("No se enviaron campos para actualizar")
	}

	if err := s.repo.UpdateCabecera(ctx, opticaID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		return nil, err
	}

	pedido, err = s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		return nil, err
	}
	return pedidoToResponse(pedido, true), nil
}

func (s *pedidoService) ActualizarEstado(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarEstadoPedidoRequest) (*dto.PedidoResponse, error) {
	estado := model.NormalizarEstado(req.Estado)
	if !model.EstadoPedidoValido(estado) {
		return nil, apierror.Invalid("Estado de pedido inválido: %q. Opciones: %s",
			req.Estado, strings.Join(model.EstadosPedido(), ", "))
	}

	pedido, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		return nil, err
	}

	if pedido.Estado == model.PedidoRecibido {
		// RECIBIDO is terminal; only the no-op transition is tolerated.
		if estado == model.PedidoRecibido {
			return pedidoToResponse(pedido, true), nil
		}
		return nil, apierror.Conflict("El pedido ya está RECIBIDO; su estado no puede cambiar")
	}
	if estado == model.PedidoRecibido {
		return nil, apierror.Invalid("Para marcar el pedido RECIBIDO use la recepción del pedido")
	}

	if err := s.repo.UpdateEstado(ctx, opticaID, id, estado); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		return nil, err
	}

	pedido, err = s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		return nil, err
	}
	return pedidoToResponse(pedido, true), nil
}

// ── Recepcionar ──────────────────────────────────────────────────────────────
// Reception happens at most once per order. When stock deduction is requested
// (the default) every line is re-validated under a row lock; one supply short
// rejects the whole reception and no stock moves.

func (s *pedidoService) Recepcionar(ctx context.Context, opticaID string, id uuid.UUID, req dto.RecepcionarPedidoRequest) (*dto.RecepcionResponse, error) {
	pedido, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		return nil, err
	}
	if pedido.FechaRecepcion != nil {
		return nil, apierror.Conflict("El pedido ya fue recibido el %s", fmtFecha(*pedido.FechaRecepcion))
	}

	fecha := time.Now().Truncate(24 * time.Hour)
	if req.FechaRecepcion != nil {
		fecha = parseFecha(*req.FechaRecepcion)
	}
	estado, err := estadoPedidoONada(req.Estado, model.PedidoRecibido)
	if err != nil {
		return nil, err
	}

	descontar := req.DescontarStock == nil || *req.DescontarStock

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if descontar {
			for _, d := range pedido.Detalles {
				insumo, err := s.insumoRepo.LockByIDTx(tx, opticaID, d.InsumoID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return apierror.Invalid("El insumo %s no pertenece a esta óptica", d.InsumoID)
					}
					return err
				}
				actual := 0
				if insumo.StockActual != nil {
					actual = *insumo.StockActual
				}
				if actual < d.Cantidad {
					return apierror.Conflict(
						"Stock insuficiente para %q: disponible %d, requiere %d",
						insumo.Descripcion, actual, d.Cantidad)
				}
				if err := s.insumoRepo.SetStockTx(tx, opticaID, d.InsumoID, actual-d.Cantidad); err != nil {
					return err
				}
			}
		}
		rows, err := s.repo.RegistrarRecepcionTx(tx, opticaID, id, fecha, estado, req.NroOrdenLab, req.Observaciones)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost the race against a concurrent reception; roll everything back.
			return apierror.Conflict("El pedido ya fue recibido")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.RecepcionResponse{
		ID:             id.String(),
		FechaRecepcion: fmtFecha(fecha),
		Estado:         estado,
		DescontarStock: descontar,
	}, nil
}

func pedidoToResponse(p *model.PedidoLaboratorio, conDetalles bool) *dto.PedidoResponse {
	resp := &dto.PedidoResponse{
		ID:               p.ID.String(),
		RecetaID:         p.RecetaID.String(),
		ProveedorID:      p.ProveedorID.String(),
		FechaEnvio:       fmtFechaPtr(p.FechaEnvio),
		FechaEstimadaRec: fmtFechaPtr(p.FechaEstimadaRec),
		FechaRecepcion:   fmtFechaPtr(p.FechaRecepcion),
		Estado:           p.Estado,
		NroOrdenLab:      p.NroOrdenLab,
		Observaciones:    p.Observaciones,
	}
	if p.Proveedor != nil {
		resp.ProveedorNombre = &p.Proveedor.Nombre
	}
	if !conDetalles {
		return resp
	}
	for i := range p.Detalles {
		d := &p.Detalles[i]
		det := dto.DetallePedidoResponse{
			ID:             d.ID.String(),
			InsumoID:       d.InsumoID.String(),
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Observaciones:  d.Observaciones,
		}
		if d.Insumo != nil {
			det.DescripcionInsumo = &d.Insumo.Descripcion
		}
		resp.Detalles = append(resp.Detalles, det)
	}
	return resp
}
