package service

import (
	"context"
	"errors"
	"time"

	"optigest/internal/apierror"
	"optigest/internal/dto"
	"optigest/internal/model"
	"optigest/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompraService interface {
	Crear(ctx context.Context, opticaID string, req dto.CrearCompraRequest) (*dto.CrearCompraResponse, error)
	ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.CompraResponse, error)
	Listar(ctx context.Context, opticaID string, f dto.CompraFilter) (*dto.CompraListResponse, error)
	Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarCompraRequest) (*dto.CompraResponse, error)
	Anular(ctx context.Context, opticaID string, id uuid.UUID, req dto.AnularCompraRequest) (*dto.CompraResponse, error)
}

type compraService struct {
	repo          repository.CompraRepository
	insumoRepo    repository.InsumoRepository
	proveedorRepo repository.ProveedorRepository
}

func NewCompraService(
	repo repository.CompraRepository,
	insumoRepo repository.InsumoRepository,
	proveedorRepo repository.ProveedorRepository,
) CompraService {
	return &compraService{repo: repo, insumoRepo: insumoRepo, proveedorRepo: proveedorRepo}
}

// ── Crear ────────────────────────────────────────────────────────────────────
// Purchase registration is validate-all-then-apply-all:
//   1. Resolve supplier and every supply up front (pre-flight, outside TX).
//      Any bad line rejects the whole request; nothing is persisted.
//   2. BEGIN TX: create header+lines with recomputed subtotals, then per line
//      lock the insumo row (FOR UPDATE), add the quantity, and seed
//      precio_costo if the supply never had one.
//   3. COMMIT: stock and purchase become visible atomically.

func (s *compraService) Crear(ctx context.Context, opticaID string, req dto.CrearCompraRequest) (*dto.CrearCompraResponse, error) {
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

	type lineaResuelta struct {
		insumoID       uuid.UUID
		descripcion    string
		cantidad       int
		precioUnitario decimal.Decimal
		subtotal       decimal.Decimal
	}

	vistos := make(map[uuid.UUID]bool, len(req.Items))
	resueltas := make([]lineaResuelta, 0, len(req.Items))
	montoTotal := decimal.Zero

	for _, item := range req.Items {
		insumoID, err := uuid.Parse(item.InsumoID)
		if err != nil {
			return nil, apierror.Invalid("insumo_id inválido: %s", item.InsumoID)
		}
		if vistos[insumoID] {
			return nil, apierror.Invalid("El insumo %s aparece más de una vez en la compra", item.InsumoID)
		}
		vistos[insumoID] = true

		if item.PrecioUnitario.IsNegative() {
			return nil, apierror.Invalid("precio_unitario no puede ser negativo (insumo %s)", item.InsumoID)
		}

		insumo, err := s.insumoRepo.FindActivo(ctx, opticaID, insumoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Invalid("El insumo %s no existe o está inactivo en esta óptica", item.InsumoID)
			}
			return nil, err
		}

		// Subtotals are always recomputed server-side, never trusted from input.
		subtotal := item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		montoTotal = montoTotal.Add(subtotal)
		resueltas = append(resueltas, lineaResuelta{
			insumoID:       insumoID,
			descripcion:    insumo.Descripcion,
			cantidad:       item.Cantidad,
			precioUnitario: item.PrecioUnitario,
			subtotal:       subtotal,
		})
	}

	compra := model.CompraInsumo{
		OpticaID:        opticaID,
		ProveedorID:     proveedorID,
		FechaCompra:     parseFecha(req.FechaCompra),
		TipoComprobante: req.TipoComprobante,
		NroComprobante:  req.NroComprobante,
		Observaciones:   req.Observaciones,
		MontoTotal:      montoTotal,
	}
	for _, l := range resueltas {
		compra.Detalles = append(compra.Detalles, model.DetalleCompra{
			OpticaID:       opticaID,
			InsumoID:       l.insumoID,
			Cantidad:       l.cantidad,
			PrecioUnitario: l.precioUnitario,
			Subtotal:       l.subtotal,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &compra); err != nil {
			return err
		}
		for _, l := range resueltas {
			insumo, err := s.insumoRepo.LockByIDTx(tx, opticaID, l.insumoID)
			if err != nil {
				return err
			}
			// Untracked stock counts as zero once a purchase touches it.
			actual := 0
			if insumo.StockActual != nil {
				actual = *insumo.StockActual
			}
			if err := s.insumoRepo.SetStockTx(tx, opticaID, l.insumoID, actual+l.cantidad); err != nil {
				return err
			}
			if insumo.PrecioCosto == nil {
				if err := s.insumoRepo.SeedPrecioCostoTx(tx, opticaID, l.insumoID, l.precioUnitario); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CrearCompraResponse{
		ID:            compra.ID.String(),
		MontoTotal:    compra.MontoTotal,
		CantidadItems: len(compra.Detalles),
	}, nil
}

func (s *compraService) ObtenerPorID(ctx context.Context, opticaID string, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Compra no encontrada")
		}
		return nil, err
	}
	return compraToResponse(compra, true), nil
}

func (s *compraService) Listar(ctx context.Context, opticaID string, f dto.CompraFilter) (*dto.CompraListResponse, error) {
	compras, total, err := s.repo.List(ctx, opticaID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		items = append(items, *compraToResponse(&compras[i], false))
	}
	return &dto.CompraListResponse{Total: total, Limit: f.Limit, Offset: f.Offset, Items: items}, nil
}

func (s *compraService) Actualizar(ctx context.Context, opticaID string, id uuid.UUID, req dto.ActualizarCompraRequest) (*dto.CompraResponse, error) {
	updates := map[string]interface{}{}
	if req.FechaCompra != nil {
		updates["fecha_compra"] = parseFecha(*req.FechaCompra)
	}
	if req.TipoComprobante != nil {
		updates["tipo_comprobante"] = req.TipoComprobante
	}
	if req.NroComprobante != nil {
		updates["nro_comprobante"] = req.NroComprobante
	}
	if req.Observaciones != nil {
		updates["observaciones"] = req.Observaciones
	}

	if len(updates) == 0 {
		return nil, apierror.Invalid("No se enviaron campos para actualizar")
	}

	rows, err := s.repo.UpdateCabecera(ctx, opticaID, id, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Either missing under this tenant or already voided; one lookup
		// tells them apart.
		compra, err := s.repo.FindByID(ctx, opticaID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("Compra no encontrada")
			}
			return nil, err
		}
		if compra.Anulada {
			return nil, apierror.Conflict("La compra está anulada y no admite modificaciones")
		}
		return nil, apierror.NotFound("Compra no encontrada")
	}

	compra, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Compra no encontrada")
		}
		return nil, err
	}
	return compraToResponse(compra, true), nil
}

// ── Anular ───────────────────────────────────────────────────────────────────
// Voiding is the exact inverse of creation. All lines are reverted or none:
// if deducting any line would leave its supply negative the whole void is
// rejected with a 409 and no stock moves.

func (s *compraService) Anular(ctx context.Context, opticaID string, id uuid.UUID, req dto.AnularCompraRequest) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Compra no encontrada")
		}
		return nil, err
	}
	if compra.Anulada {
		return nil, apierror.Conflict("La compra ya fue anulada")
	}
	if len(compra.Detalles) == 0 {
		return nil, apierror.Conflict("La compra no tiene detalles para revertir")
	}

	ahora := time.Now()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, d := range compra.Detalles {
			insumo, err := s.insumoRepo.LockByIDTx(tx, opticaID, d.InsumoID)
			if err != nil {
				return err
			}
			actual := 0
			if insumo.StockActual != nil {
				actual = *insumo.StockActual
			}
			nuevo := actual - d.Cantidad
			if nuevo < 0 {
				return apierror.Conflict(
					"No se puede anular: el insumo %q quedaría con stock negativo (actual %d, a revertir %d)",
					insumo.Descripcion, actual, d.Cantidad)
			}
			if err := s.insumoRepo.SetStockTx(tx, opticaID, d.InsumoID, nuevo); err != nil {
				return err
			}
		}
		rows, err := s.repo.MarcarAnuladaTx(tx, opticaID, id, req.Motivo, ahora)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost the race against a concurrent void; roll everything back.
			return apierror.Conflict("La compra ya fue anulada")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	compra, err = s.repo.FindByID(ctx, opticaID, id)
	if err != nil {
		return nil, err
	}
	return compraToResponse(compra, true), nil
}

func compraToResponse(c *model.CompraInsumo, conDetalles bool) *dto.CompraResponse {
	resp := &dto.CompraResponse{
		ID:              c.ID.String(),
		ProveedorID:     c.ProveedorID.String(),
		FechaCompra:     fmtFecha(c.FechaCompra),
		TipoComprobante: c.TipoComprobante,
		NroComprobante:  c.NroComprobante,
		Observaciones:   c.Observaciones,
		MontoTotal:      c.MontoTotal,
		Anulada:         c.Anulada,
		MotivoAnulacion: c.MotivoAnulacion,
		FechaAnulacion:  fmtFechaPtr(c.FechaAnulacion),
	}
	if !conDetalles {
		return resp
	}
	for i := range c.Detalles {
		d := &c.Detalles[i]
		det := dto.DetalleCompraResponse{
			ID:             d.ID.String(),
			InsumoID:       d.InsumoID.String(),
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		}
		if d.Insumo != nil {
			det.DescripcionInsumo = &d.Insumo.Descripcion
		}
		resp.Detalles = append(resp.Detalles, det)
	}
	return resp
}
