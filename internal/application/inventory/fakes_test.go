package inventory_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/repository"
)

// fakeStore almacén en memoria compartido por los repos fake. Sin bloqueo de
// filas: los tests de casos de uso ejercitan la lógica, no la concurrencia.
type fakeStore struct {
	products  map[string]*entity.Product
	movements []*entity.Movement
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]*entity.Product)}
}

func (s *fakeStore) productRepo() *fakeProductRepo   { return &fakeProductRepo{s: s} }
func (s *fakeStore) movementRepo() *fakeMovementRepo { return &fakeMovementRepo{s: s} }

// seedProduct deja un producto ya existente en el almacén.
func (s *fakeStore) seedProduct(name string, quantity string, nearestExpiry, lastUpdatedBy *string) {
	q := decimal.RequireFromString(quantity)
	s.products[name] = &entity.Product{
		Name:          name,
		Quantity:      &q,
		NearestExpiry: nearestExpiry,
		LastUpdatedBy: lastUpdatedBy,
	}
}

// ── fakeProductRepo ───────────────────────────────────────────────────────────

type fakeProductRepo struct {
	s *fakeStore
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Get(_ context.Context, name string) (*entity.Product, error) {
	p, ok := r.s.products[name]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, name string) (*entity.Product, error) {
	return r.Get(ctx, name)
}

// Upsert replica la semántica merge-aditiva del repo real: crea si no existe,
// suma Quantity sobre la almacenada si existe, NearestExpiry solo se escribe
// si viene no-nil, CreatedAt solo en la creación.
func (r *fakeProductRepo) Upsert(_ context.Context, p *entity.Product) error {
	existing, ok := r.s.products[p.Name]
	if !ok {
		cp := *p
		r.s.products[p.Name] = &cp
		return nil
	}
	if p.Quantity != nil {
		q := existing.CurrentQuantity().Add(*p.Quantity)
		existing.Quantity = &q
	}
	existing.LastUpdatedBy = p.LastUpdatedBy
	if p.NearestExpiry != nil {
		existing.NearestExpiry = p.NearestExpiry
	}
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(_ context.Context, name string, quantity decimal.Decimal, userID string) error {
	p := r.s.products[name]
	p.Quantity = &quantity
	p.LastUpdatedBy = &userID
	return nil
}

func (r *fakeProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	names := make([]string, 0, len(r.s.products))
	for name := range r.s.products {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]*entity.Product, 0, len(names))
	for _, name := range names {
		cp := *r.s.products[name]
		list = append(list, &cp)
	}
	return list, nil
}

// ── fakeMovementRepo ──────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	s *fakeStore
}

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productName string) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductName == productName {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// ── fakeTxRunner ──────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta el callback directamente sobre el almacén en memoria,
// sin transacción real.
type fakeTxRunner struct {
	s *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	products repository.ProductRepository,
	movements repository.MovementRepository,
) error) error {
	return fn(r.s.productRepo(), r.s.movementRepo())
}
