package service

import (
	"context"
	"time"

	"optigest/internal/dto"
	"optigest/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ────────────────────────────────────────────────
// Every stub returns DB() == nil so runTx executes the callback directly,
// without a real transaction. Tests that exercise all-or-nothing behavior put
// the failing line first, since the stubs cannot roll back.

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	c.ID = uuid.New()
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, opticaID string, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok || c.OpticaID != opticaID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindActivo(_ context.Context, opticaID string, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok || c.OpticaID != opticaID || !c.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByDNI(_ context.Context, opticaID string, dni int64) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.OpticaID == opticaID && c.DNI == dni {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context, opticaID string, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.OpticaID == opticaID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Select(_ context.Context, opticaID, _ string, _ int) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.OpticaID == opticaID && c.Activo {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, opticaID string, id uuid.UUID) error {
	c, ok := r.clientes[id]
	if !ok || c.OpticaID != opticaID {
		return gorm.ErrRecordNotFound
	}
	c.Activo = false
	return nil
}

type stubRecetaRepo struct {
	recetas map[uuid.UUID]*model.Receta
}

func newStubRecetaRepo() *stubRecetaRepo {
	return &stubRecetaRepo{recetas: make(map[uuid.UUID]*model.Receta)}
}

func (r *stubRecetaRepo) Create(_ context.Context, rec *model.Receta) error {
	rec.ID = uuid.New()
	r.recetas[rec.ID] = rec
	return nil
}

func (r *stubRecetaRepo) FindByID(_ context.Context, opticaID string, id uuid.UUID) (*model.Receta, error) {
	rec, ok := r.recetas[id]
	if !ok || rec.OpticaID != opticaID {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *stubRecetaRepo) List(_ context.Context, opticaID string, _ dto.RecetaFilter) ([]model.Receta, int64, error) {
	var out []model.Receta
	for _, rec := range r.recetas {
		if rec.OpticaID == opticaID {
			out = append(out, *rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubRecetaRepo) UpdateCampos(_ context.Context, opticaID string, id uuid.UUID, updates map[string]interface{}) error {
	rec, ok := r.recetas[id]
	if !ok || rec.OpticaID != opticaID {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["estado"]; ok {
		rec.Estado = v.(string)
	}
	if v, ok := updates["observaciones"]; ok {
		rec.Observaciones = v.(*string)
	}
	if v, ok := updates["profesional"]; ok {
		rec.Profesional = v.(*string)
	}
	if v, ok := updates["tipo_lente"]; ok {
		rec.TipoLente = v.(*string)
	}
	return nil
}

func (r *stubRecetaRepo) UpdateEstadoTx(_ *gorm.DB, opticaID string, id uuid.UUID, estado string) error {
	rec, ok := r.recetas[id]
	if !ok || rec.OpticaID != opticaID {
		return gorm.ErrRecordNotFound
	}
	rec.Estado = estado
	return nil
}

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	p.ID = uuid.New()
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, opticaID string, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok || p.OpticaID != opticaID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) FindActivo(_ context.Context, opticaID string, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok || p.OpticaID != opticaID || !p.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) List(_ context.Context, opticaID string, _ dto.ProveedorFilter) ([]model.Proveedor, int64, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if p.OpticaID == opticaID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProveedorRepo) Select(_ context.Context, opticaID, _ string, _ int) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if p.OpticaID == opticaID && p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(_ context.Context, opticaID string, id uuid.UUID) error {
	p, ok := r.proveedores[id]
	if !ok || p.OpticaID != opticaID {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

type stubInsumoRepo struct {
	insumos map[uuid.UUID]*model.Insumo
}

func newStubInsumoRepo() *stubInsumoRepo {
	return &stubInsumoRepo{insumos: make(map[uuid.UUID]*model.Insumo)}
}

func (r *stubInsumoRepo) Create(_ context.Context, i *model.Insumo) error {
	i.ID = uuid.New()
	r.insumos[i.ID] = i
	return nil
}

func (r *stubInsumoRepo) FindByID(_ context.Context, opticaID string, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok || i.OpticaID != opticaID {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubInsumoRepo) FindActivo(_ context.Context, opticaID string, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok || i.OpticaID != opticaID || !i.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubInsumoRepo) List(_ context.Context, opticaID string, _ dto.InsumoFilter) ([]model.Insumo, int64, error) {
	var out []model.Insumo
	for _, i := range r.insumos {
		if i.OpticaID == opticaID {
			out = append(out, *i)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubInsumoRepo) Select(_ context.Context, opticaID string, _ *uuid.UUID, _ string, _ int) ([]model.Insumo, error) {
	var out []model.Insumo
	for _, i := range r.insumos {
		if i.OpticaID == opticaID && i.Activo {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInsumoRepo) Update(_ context.Context, i *model.Insumo) error {
	r.insumos[i.ID] = i
	return nil
}

func (r *stubInsumoRepo) SoftDelete(_ context.Context, opticaID string, id uuid.UUID) error {
	i, ok := r.insumos[id]
	if !ok || i.OpticaID != opticaID {
		return gorm.ErrRecordNotFound
	}
	i.Activo = false
	return nil
}

func (r *stubInsumoRepo) LockByIDTx(_ *gorm.DB, opticaID string, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok || i.OpticaID != opticaID {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubInsumoRepo) SetStockTx(_ *gorm.DB, opticaID string, id uuid.UUID, stock int) error {
	i, ok := r.insumos[id]
	if !ok || i.OpticaID != opticaID {
		return gorm.ErrRecordNotFound
	}
	i.StockActual = &stock
	return nil
}

func (r *stubInsumoRepo) SeedPrecioCostoTx(_ *gorm.DB, opticaID string, id uuid.UUID, precio decimal.Decimal) error {
	i, ok := r.insumos[id]
	if !ok || i.OpticaID != opticaID {
		return gorm.ErrRecordNotFound
	}
	if i.PrecioCosto == nil {
		i.PrecioCosto = &precio
	}
	return nil
}

func (r *stubInsumoRepo) DB() *gorm.DB { return nil }

type stubCompraRepo struct {
	compras map[uuid.UUID]*model.CompraInsumo
}

func newStubCompraRepo() *stubCompraRepo {
	return &stubCompraRepo{compras: make(map[uuid.UUID]*model.CompraInsumo)}
}

func (r *stubCompraRepo) CreateTx(_ *gorm.DB, c *model.CompraInsumo) error {
	c.ID = uuid.New()
	for i := range c.Detalles {
		c.Detalles[i].ID = uuid.New()
		c.Detalles[i].CompraID = c.ID
	}
	r.compras[c.ID] = c
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, opticaID string, id uuid.UUID) (*model.CompraInsumo, error) {
	c, ok := r.compras[id]
	if !ok || c.OpticaID != opticaID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCompraRepo) List(_ context.Context, opticaID string, _ dto.CompraFilter) ([]model.CompraInsumo, int64, error) {
	var out []model.CompraInsumo
	for _, c := range r.compras {
		if c.OpticaID == opticaID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCompraRepo) UpdateCabecera(_ context.Context, opticaID string, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	c, ok := r.compras[id]
	if !ok || c.OpticaID != opticaID || c.Anulada {
		return 0, nil
	}
	if v, ok := updates["fecha_compra"]; ok {
		c.FechaCompra = v.(time.Time)
	}
	if v, ok := updates["tipo_comprobante"]; ok {
		c.TipoComprobante = v.(*string)
	}
	if v, ok := updates["nro_comprobante"]; ok {
		c.NroComprobante = v.(*string)
	}
	if v, ok := updates["observaciones"]; ok {
		c.Observaciones = v.(*string)
	}
	return 1, nil
}

func (r *stubCompraRepo) MarcarAnuladaTx(_ *gorm.DB, opticaID string, id uuid.UUID, motivo *string, ts time.Time) (int64, error) {
	c, ok := r.compras[id]
	if !ok || c.OpticaID != opticaID || c.Anulada {
		return 0, nil
	}
	c.Anulada = true
	c.MotivoAnulacion = motivo
	c.FechaAnulacion = &ts
	return 1, nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.PedidoLaboratorio
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.PedidoLaboratorio)}
}

func (r *stubPedidoRepo) CreateTx(_ *gorm.DB, p *model.PedidoLaboratorio) error {
	p.ID = uuid.New()
	for i := range p.Detalles {
		p.Detalles[i].ID = uuid.New()
		p.Detalles[i].PedidoID = p.ID
	}
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, opticaID string, id uuid.UUID) (*model.PedidoLaboratorio, error) {
	p, ok := r.pedidos[id]
	if !ok || p.OpticaID != opticaID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) List(_ context.Context, opticaID string, _ dto.PedidoFilter) ([]model.PedidoLaboratorio, int64, error) {
	var out []model.PedidoLaboratorio
	for _, p := range r.pedidos {
		if p.OpticaID == opticaID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) UpdateEstado(_ context.Context, opticaID string, id uuid.UUID, estado string) error {
	p, ok := r.pedidos[id]
	if !ok || p.OpticaID != opticaID {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (r *stubPedidoRepo) UpdateCabecera(_ context.Context, opticaID string, id uuid.UUID, updates map[string]interface{}) error {
	p, ok := r.pedidos[id]
	if !ok || p.OpticaID != opticaID {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["estado"]; ok {
		p.Estado = v.(string)
	}
	if v, ok := updates["nro_orden_lab"]; ok {
		p.NroOrdenLab = v.(*string)
	}
	if v, ok := updates["fecha_estimada_rec"]; ok {
		f := v.(time.Time)
		p.FechaEstimadaRec = &f
	}
	if v, ok := updates["observaciones"]; ok {
		p.Observaciones = v.(*string)
	}
	return nil
}

func (r *stubPedidoRepo) RegistrarRecepcionTx(_ *gorm.DB, opticaID string, id uuid.UUID, fecha time.Time, estado string, nroOrdenLab, observaciones *string) (int64, error) {
	p, ok := r.pedidos[id]
	if !ok || p.OpticaID != opticaID || p.FechaRecepcion != nil {
		return 0, nil
	}
	p.FechaRecepcion = &fecha
	p.Estado = estado
	if nroOrdenLab != nil {
		p.NroOrdenLab = nroOrdenLab
	}
	if observaciones != nil {
		p.Observaciones = observaciones
	}
	return 1, nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

// ── Seed helpers ──────────────────────────────────────────────────────────────

const (
	opticaA = "optica-centro"
	opticaB = "optica-norte"
)

func seedProveedor(r *stubProveedorRepo, opticaID string, activo bool) *model.Proveedor {
	p := &model.Proveedor{ID: uuid.New(), OpticaID: opticaID, Nombre: "Laboratorio Andino", Activo: activo}
	r.proveedores[p.ID] = p
	return p
}

func seedInsumo(r *stubInsumoRepo, opticaID string, stock *int, precioCosto *decimal.Decimal) *model.Insumo {
	i := &model.Insumo{
		ID:          uuid.New(),
		OpticaID:    opticaID,
		Descripcion: "Cristal orgánico 1.56",
		StockActual: stock,
		PrecioCosto: precioCosto,
		Activo:      true,
	}
	r.insumos[i.ID] = i
	return i
}

func seedReceta(r *stubRecetaRepo, opticaID string, estado string) *model.Receta {
	rec := &model.Receta{
		ID:          uuid.New(),
		OpticaID:    opticaID,
		ClienteID:   uuid.New(),
		FechaReceta: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Estado:      estado,
	}
	r.recetas[rec.ID] = rec
	return rec
}

func intPtr(v int) *int                         { return &v }
func strPtr(v string) *string                   { return &v }
func boolPtr(v bool) *bool                      { return &v }
func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }
