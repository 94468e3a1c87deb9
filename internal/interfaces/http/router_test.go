package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-hosteria/internal/application/auth"
	"github.com/tu-usuario/inventario-hosteria/internal/application/inventory"
	"github.com/tu-usuario/inventario-hosteria/internal/domain"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/repository"
	"github.com/tu-usuario/inventario-hosteria/internal/infrastructure/identity"
	infrapdf "github.com/tu-usuario/inventario-hosteria/internal/infrastructure/pdf"
	apphttp "github.com/tu-usuario/inventario-hosteria/internal/interfaces/http"
	"github.com/tu-usuario/inventario-hosteria/pkg/config"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria: repos de producto, movimiento y usuario + tx runner
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	movements []*entity.Movement
	users     map[string]*entity.User // por email
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		users:    make(map[string]*entity.User),
	}
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Get(_ context.Context, name string) (*entity.Product, error) {
	p, ok := r.s.products[name]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, name string) (*entity.Product, error) {
	return r.Get(ctx, name)
}

func (r *memProductRepo) Upsert(_ context.Context, p *entity.Product) error {
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

func (r *memProductRepo) UpdateQuantity(_ context.Context, name string, quantity decimal.Decimal, userID string) error {
	p := r.s.products[name]
	p.Quantity = &quantity
	p.LastUpdatedBy = &userID
	return nil
}

func (r *memProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
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

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(_ context.Context, productName string) ([]*entity.Movement, error) {
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

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.s.users[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.s.users[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.s.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	products repository.ProductRepository,
	movements repository.MovementRepository,
) error) error {
	return fn(&memProductRepo{s: r.s}, &memMovementRepo{s: r.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// App de test: el stack completo sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app   *fiber.App
	store *memStore
}

func buildTestEnv(t *testing.T, ready func() bool) *testEnv {
	t.Helper()
	s := newMemStore()
	return buildTestEnvWith(t, s, &memProductRepo{s: s}, ready)
}

func buildTestEnvWith(t *testing.T, s *memStore, products repository.ProductRepository, ready func() bool) *testEnv {
	t.Helper()
	log := logger.Nop()

	provider := identity.NewProvider(&memUserRepo{s: s}, config.TokenConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Expiration: 60,
		Issuer:     "inventario-hosteria-test",
	})
	authUC := auth.NewAuthUseCase(provider)
	applyUC := inventory.NewApplyMovementUseCase(&memTxRunner{s: s}, log)
	queryUC := inventory.NewProductQueryUseCase(products, &memMovementRepo{s: s}, log)

	app := fiber.New()
	sessStore := apphttp.NewSessionStore(config.SessionConfig{ExpirationHours: 1})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		ApplyMovement: applyUC,
		ProductQuery:  queryUC,
		SheetPDF:      infrapdf.NewProductSheetGenerator(),
		Store:         sessStore,
		Log:           log,
		Ready:         ready,
	})
	return &testEnv{app: app, store: s}
}

// doJSON lanza una petición JSON con cookie de sesión opcional.
func (e *testEnv) doJSON(t *testing.T, method, path, body, cookie string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// openSession registra un usuario, emite idToken, abre sesión y devuelve la cookie.
func (e *testEnv) openSession(t *testing.T, email string) string {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, "/auth/register", `{"email":"`+email+`","password":"secreto1"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = e.doJSON(t, http.MethodPost, "/auth/login", `{"email":"`+email+`","password":"secreto1"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	idToken, _ := decodeBody(t, resp)["idToken"].(string)
	require.NotEmpty(t, idToken)

	resp = e.doJSON(t, http.MethodPost, "/auth/sessionLogin", `{"idToken":"`+idToken+`"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	cookie := resp.Header.Get("Set-Cookie")
	require.NotEmpty(t, cookie, "sessionLogin debe dejar cookie de sesión")
	return strings.Split(cookie, ";")[0]
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: registro → sesión → movimiento → consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCompleto_CargaYConsulta(t *testing.T) {
	env := buildTestEnv(t, nil)
	cookie := env.openSession(t, "ana@hosteria.test")

	// Carga inicial
	resp := env.doJSON(t, http.MethodPost, "/movements",
		`{"date":"2025-06-15","movementType":"load","productName":"Harina 000","quantity":10,"unitPrice":2.5,"expiryDate":"2025-12-31"}`,
		cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["movementId"])

	// Descarga parcial
	resp = env.doJSON(t, http.MethodPost, "/movements",
		`{"date":"2025-06-16","movementType":"unload","productName":"Harina 000","quantity":4}`,
		cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Detalle: stock 6, promedio 2.50, caducidad registrada
	resp = env.doJSON(t, http.MethodGet, "/products/Harina%20000", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decodeBody(t, resp)
	assert.Equal(t, "Harina 000", detail["productName"])
	assert.Equal(t, "6", detail["totalQuantityInStock"])
	assert.Equal(t, "2.5", detail["averageUnitPrice"])
	assert.Equal(t, []any{"2025-12-31"}, detail["expirationDateHistory"])
	movements, _ := detail["movements"].([]any)
	assert.Len(t, movements, 2)

	// Dashboard
	resp = env.doJSON(t, http.MethodGet, "/dashboard-data", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var items []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Harina 000", items[0]["productName"])
	assert.Equal(t, "2025-12-31", items[0]["nearestExpiry"])
}

func TestMovements_DescargaInvalidaDevuelve400(t *testing.T) {
	env := buildTestEnv(t, nil)
	cookie := env.openSession(t, "ana@hosteria.test")

	// Producto inexistente
	resp := env.doJSON(t, http.MethodPost, "/movements",
		`{"date":"2025-06-15","movementType":"unload","productName":"Fantasma","quantity":1}`,
		cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decodeBody(t, resp)["code"])

	// Stock insuficiente
	resp = env.doJSON(t, http.MethodPost, "/movements",
		`{"date":"2025-06-15","movementType":"load","productName":"Leche","quantity":2}`, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = env.doJSON(t, http.MethodPost, "/movements",
		`{"date":"2025-06-16","movementType":"unload","productName":"Leche","quantity":5}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeBody(t, resp)["code"])
}

func TestMovements_PayloadInvalidoDevuelve400(t *testing.T) {
	env := buildTestEnv(t, nil)
	cookie := env.openSession(t, "ana@hosteria.test")

	// Body que no es JSON
	resp := env.doJSON(t, http.MethodPost, "/movements", `no-es-json`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Cantidad negativa: mensaje de validación preciso
	resp = env.doJSON(t, http.MethodPost, "/movements",
		`{"date":"2025-06-15","movementType":"load","productName":"Leche","quantity":-1}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, "quantity must be a positive number", body["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión y autorización
// ──────────────────────────────────────────────────────────────────────────────

func TestRutasProtegidas_SinSesionDevuelven401(t *testing.T) {
	env := buildTestEnv(t, nil)
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/dashboard-data"},
		{http.MethodPost, "/movements"},
		{http.MethodGet, "/products/Harina"},
	} {
		resp := env.doJSON(t, route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
		resp.Body.Close()
	}
}

func TestAuthStatus_ReflejaLaSesion(t *testing.T) {
	env := buildTestEnv(t, nil)

	resp := env.doJSON(t, http.MethodGet, "/auth/status", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["isLoggedIn"])

	cookie := env.openSession(t, "ana@hosteria.test")
	resp = env.doJSON(t, http.MethodGet, "/auth/status", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["isLoggedIn"])
	assert.NotEmpty(t, body["user_id"])
}

func TestLogout_InvalidaLaSesion(t *testing.T) {
	env := buildTestEnv(t, nil)
	cookie := env.openSession(t, "ana@hosteria.test")

	resp := env.doJSON(t, http.MethodPost, "/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/dashboard-data", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "la cookie destruida ya no abre sesión")
	resp.Body.Close()
}

func TestAuth_RegistroDuplicadoDevuelve409(t *testing.T) {
	env := buildTestEnv(t, nil)
	body := `{"email":"ana@hosteria.test","password":"secreto1"}`

	resp := env.doJSON(t, http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", decodeBody(t, resp)["code"])
}

func TestAuth_CredencialesInvalidasDevuelven401(t *testing.T) {
	env := buildTestEnv(t, nil)
	resp := env.doJSON(t, http.MethodPost, "/auth/register", `{"email":"ana@hosteria.test","password":"secreto1"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/auth/login", `{"email":"ana@hosteria.test","password":"incorrecta"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/auth/sessionLogin", `{"idToken":"token.invalido.aqui"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos, exportaciones y disponibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_InexistenteDevuelve404(t *testing.T) {
	env := buildTestEnv(t, nil)
	cookie := env.openSession(t, "ana@hosteria.test")

	resp := env.doJSON(t, http.MethodGet, "/products/Fantasma", "", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, resp)["code"])
}

func TestExports_XLSXyPDF(t *testing.T) {
	env := buildTestEnv(t, nil)
	cookie := env.openSession(t, "ana@hosteria.test")

	resp := env.doJSON(t, http.MethodPost, "/movements",
		`{"date":"2025-06-15","movementType":"load","productName":"Harina 000","quantity":10,"unitPrice":2.5}`,
		cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/products/Harina%20000/movements.xlsx", "", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/products/Harina%20000/sheet.pdf", "", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/pdf")
	resp.Body.Close()
}

func TestAvailability_AlmacenCaidoDevuelve503(t *testing.T) {
	env := buildTestEnv(t, func() bool { return false })

	resp := env.doJSON(t, http.MethodPost, "/auth/register", `{"email":"ana@hosteria.test","password":"secreto1"}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "UNAVAILABLE", decodeBody(t, resp)["code"])

	resp = env.doJSON(t, http.MethodGet, "/dashboard-data", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()

	// Status y logout viven sobre la cookie de sesión, no sobre el almacén:
	// siguen respondiendo aunque la base esté caída.
	resp = env.doJSON(t, http.MethodGet, "/auth/status", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["isLoggedIn"])

	resp = env.doJSON(t, http.MethodPost, "/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// failingProductRepo simula un driver caído cuyos errores arrastran el DSN.
type failingProductRepo struct{}

var errDriverConDSN = errors.New(`connect failed: dsn "postgres://inventario:secreto-db@db:5432/inventario"`)

func (failingProductRepo) Get(context.Context, string) (*entity.Product, error) {
	return nil, errDriverConDSN
}

func (failingProductRepo) GetForUpdate(context.Context, string) (*entity.Product, error) {
	return nil, errDriverConDSN
}

func (failingProductRepo) Upsert(context.Context, *entity.Product) error { return errDriverConDSN }

func (failingProductRepo) UpdateQuantity(context.Context, string, decimal.Decimal, string) error {
	return errDriverConDSN
}

func (failingProductRepo) ListAll(context.Context) ([]*entity.Product, error) {
	return nil, errDriverConDSN
}

func TestErroresInternos_NoFiltranDetalleAlCliente(t *testing.T) {
	env := buildTestEnvWith(t, newMemStore(), failingProductRepo{}, nil)
	cookie := env.openSession(t, "ana@hosteria.test")

	resp := env.doJSON(t, http.MethodGet, "/dashboard-data", "", cookie)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "INTERNAL", body["code"])
	assert.Equal(t, "An internal server error occurred.", body["message"])
	assert.NotContains(t, string(raw), "secreto-db", "el error del driver no debe llegar al cliente")
	assert.NotContains(t, string(raw), "dsn")
}
