package service

import (
	"context"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ────────────────────────────────────────────────
// Services open transactions through repo.DB(); the stubs return nil so runTx
// executes the callback directly without a database.

type stubUsuarioRepo struct {
	users map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.users[u.ID] = u
	return nil
}

type stubLoginAttemptRepo struct {
	attempts []model.LoginAttempt
}

func (r *stubLoginAttemptRepo) Create(_ context.Context, a *model.LoginAttempt) error {
	a.ID = uuid.New()
	r.attempts = append(r.attempts, *a)
	return nil
}

func (r *stubLoginAttemptRepo) CountRecentFailures(_ context.Context, usuarioID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	for _, a := range r.attempts {
		if a.UsuarioID == usuarioID && !a.Success && !a.AttemptedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, negocioID, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok || c.NegocioID != negocioID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByEmail(_ context.Context, email string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context, negocioID uuid.UUID) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.NegocioID == negocioID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, negocioID, id uuid.UUID) error {
	if c, ok := r.clientes[id]; ok && c.NegocioID == negocioID {
		delete(r.clientes, id)
	}
	return nil
}

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, negocioID, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok || p.NegocioID != negocioID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, negocioID uuid.UUID) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.NegocioID == negocioID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, negocioID, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok && p.NegocioID == negocioID {
		delete(r.productos, id)
	}
	return nil
}

type stubVentaRepo struct {
	ventas   map[uuid.UUID]*model.Venta
	detalles map[uuid.UUID]*model.DetalleVenta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{
		ventas:   make(map[uuid.UUID]*model.Venta),
		detalles: make(map[uuid.UUID]*model.DetalleVenta),
	}
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) CreateTx(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	for i := range v.Detalles {
		d := &v.Detalles[i]
		d.ID = uuid.New()
		d.VentaID = v.ID
		r.detalles[d.ID] = d
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) SaveTx(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, negocioID, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok || v.NegocioID != negocioID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	cp.Detalles = nil
	for _, d := range r.detalles {
		if d.VentaID == v.ID {
			cp.Detalles = append(cp.Detalles, *d)
		}
	}
	return &cp, nil
}

func (r *stubVentaRepo) List(_ context.Context, negocioID uuid.UUID, _ dto.VentaFilter) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.NegocioID == negocioID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) FindDetalle(_ context.Context, id uuid.UUID) (*model.DetalleVenta, error) {
	d, ok := r.detalles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubVentaRepo) CreateDetalleTx(_ *gorm.DB, d *model.DetalleVenta) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.detalles[d.ID] = d
	return nil
}

func (r *stubVentaRepo) SaveDetalleTx(_ *gorm.DB, d *model.DetalleVenta) error {
	r.detalles[d.ID] = d
	return nil
}

func (r *stubVentaRepo) DeleteDetallesTx(_ *gorm.DB, ventaID uuid.UUID) error {
	for id, d := range r.detalles {
		if d.VentaID == ventaID {
			delete(r.detalles, id)
		}
	}
	return nil
}

func (r *stubVentaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) UpdateSaldoTx(_ *gorm.DB, id uuid.UUID, payment, balanceDue interface{}) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p, ok := payment.(decimal.Decimal); ok {
		v.Payment = p
	}
	if b, ok := balanceDue.(decimal.Decimal); ok {
		v.BalanceDue = b
	}
	return nil
}

type stubDeudaRepo struct {
	deudas map[uuid.UUID]*model.Deuda
	ventas *stubVentaRepo
}

func newStubDeudaRepo(ventas *stubVentaRepo) *stubDeudaRepo {
	return &stubDeudaRepo{deudas: make(map[uuid.UUID]*model.Deuda), ventas: ventas}
}

func (r *stubDeudaRepo) CreateTx(_ *gorm.DB, d *model.Deuda) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.deudas[d.ID] = d
	return nil
}

func (r *stubDeudaRepo) SaveTx(_ *gorm.DB, d *model.Deuda) error {
	r.deudas[d.ID] = d
	return nil
}

func (r *stubDeudaRepo) FindByClienteVentaTx(_ *gorm.DB, clienteID, ventaID uuid.UUID) (*model.Deuda, error) {
	for _, d := range r.deudas {
		if d.ClienteID == clienteID && d.VentaID == ventaID {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDeudaRepo) DeleteByClienteVentaTx(_ *gorm.DB, clienteID, ventaID uuid.UUID) error {
	for id, d := range r.deudas {
		if d.ClienteID == clienteID && d.VentaID == ventaID {
			delete(r.deudas, id)
		}
	}
	return nil
}

func (r *stubDeudaRepo) DeleteByVentaTx(_ *gorm.DB, ventaID uuid.UUID) error {
	for id, d := range r.deudas {
		if d.VentaID == ventaID {
			delete(r.deudas, id)
		}
	}
	return nil
}

func (r *stubDeudaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.deudas, id)
	return nil
}

func (r *stubDeudaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Deuda, error) {
	d, ok := r.deudas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	if r.ventas != nil {
		if v, ok := r.ventas.ventas[d.VentaID]; ok {
			vc := *v
			cp.Venta = &vc
		}
	}
	return &cp, nil
}

func (r *stubDeudaRepo) List(_ context.Context, negocioID uuid.UUID, _ dto.DeudaFilter) ([]model.Deuda, error) {
	var out []model.Deuda
	for _, d := range r.deudas {
		if r.ventas == nil {
			out = append(out, *d)
			continue
		}
		if v, ok := r.ventas.ventas[d.VentaID]; ok && v.NegocioID == negocioID {
			out = append(out, *d)
		}
	}
	return out, nil
}

type stubAnuncioRepo struct {
	anuncios map[uuid.UUID]*model.Anuncio
}

func newStubAnuncioRepo() *stubAnuncioRepo {
	return &stubAnuncioRepo{anuncios: make(map[uuid.UUID]*model.Anuncio)}
}

func (r *stubAnuncioRepo) Create(_ context.Context, a *model.Anuncio) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.anuncios[a.ID] = a
	return nil
}

func (r *stubAnuncioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Anuncio, error) {
	a, ok := r.anuncios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAnuncioRepo) ListAll(_ context.Context) ([]model.Anuncio, error) {
	var out []model.Anuncio
	for _, a := range r.anuncios {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAnuncioRepo) ListActivos(_ context.Context) ([]model.Anuncio, error) {
	var out []model.Anuncio
	for _, a := range r.anuncios {
		if a.Estado == "Activo" {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAnuncioRepo) Finalizar(_ context.Context, id uuid.UUID, finishedAt *time.Time) error {
	a, ok := r.anuncios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Estado = "Finalizado"
	if finishedAt != nil {
		a.FinishedAt = finishedAt
	}
	return nil
}

func (r *stubAnuncioRepo) Update(_ context.Context, a *model.Anuncio) error {
	r.anuncios[a.ID] = a
	return nil
}
