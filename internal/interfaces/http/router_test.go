package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/geststock/internal/application/auth"
	"github.com/jhoicas/geststock/internal/application/dto"
	"github.com/jhoicas/geststock/internal/application/state"
	"github.com/jhoicas/geststock/internal/application/transcode"
	"github.com/jhoicas/geststock/internal/domain/entity"
	"github.com/jhoicas/geststock/internal/infrastructure/localstore"
	apphttp "github.com/jhoicas/geststock/internal/interfaces/http"
	"github.com/jhoicas/geststock/pkg/logger"
	"github.com/jhoicas/geststock/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "geststock-test"
	testExpMin    = 60
)

// buildTestApp levanta la aplicación completa sobre un archivo de datos
// temporal: el arranque deja las cuentas admin/admin123 y user/user123.
func buildTestApp(t *testing.T) (*fiber.App, *state.Store) {
	t.Helper()
	log := logger.Nop()
	repo := localstore.NewStateRepository(filepath.Join(t.TempDir(), "appdata.json"), log)
	store, err := state.New(repo, log)
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Store:     store,
		AuthUC:    auth.NewUseCase(store, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		Gate:      auth.NewGate(store),
		Transcode: transcode.NewService(store),
		JWTSecret: testJWTSecret,
	})
	return app, store
}

// doJSON lanza una petición con cuerpo JSON opcional y token opcional.
func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body any) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// login autentica contra el endpoint real y devuelve el token emitido.
func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "el login debe aceptar las credenciales de arranque")

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	assert.Equal(t, username, out.User.Username)
	return out.Token
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests middleware de autenticación
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinToken(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/api/products", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Header malformado o token de otra firma → 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app, _ := buildTestApp(t)

	foreign, err := token.Generate("otro-secret", "admin", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	cases := map[string]string{
		"formato malo": "NoEsBearer xyz",
		"firma ajena":  "Bearer " + foreign,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			req.Header.Set("Authorization", header)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), "INVALID_TOKEN")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de login / sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesMalas(t *testing.T) {
	app, store := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "nope"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_CREDENTIALS")
	assert.Contains(t, string(body), "Identifiants incorrects ou utilisateur inactif")
	assert.Nil(t, store.CurrentSession(), "un login fallido no fija sesión")
}

func TestSesion_CicloCompleto(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin", "admin123")

	resp := doJSON(t, app, fiber.MethodGet, "/api/session", tok, nil)
	var sess dto.SessionResponse
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &sess)
	assert.Equal(t, "admin", sess.Username)
	assert.Equal(t, "admin", sess.Role)

	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/logout", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// El token sigue autenticando la petición, pero ya no hay sesión.
	resp = doJSON(t, app, fiber.MethodGet, "/api/session", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CRUD de productos vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CicloCRUD(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin", "admin123")

	qty, price := 3, "4.5"
	resp := doJSON(t, app, fiber.MethodPost, "/api/products", tok, fiber.Map{
		"name": "Gel", "quantity": qty, "price": price, "category": "Alimentaire",
	})
	var created dto.ProductResponse
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &created)
	assert.Equal(t, int64(1), created.ID, "el primer producto recibe id 1")
	assert.Equal(t, "Stock Bas", created.Statut)
	assert.True(t, created.LowStock)
	assert.Equal(t, "bg-success", created.CategoryBadge)

	resp = doJSON(t, app, fiber.MethodPut, "/api/products/1", tok, fiber.Map{
		"name": "Gel", "quantity": 40, "price": price, "category": "Alimentaire",
	})
	var updated dto.ProductResponse
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &updated)
	assert.Equal(t, int64(1), updated.ID, "la modificación conserva el id")
	assert.Equal(t, 40, updated.Quantity)
	assert.Equal(t, "En Stock", updated.Statut)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/products/1", tok, nil)
	var removed dto.ProductResponse
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &removed)
	assert.Equal(t, "Gel", removed.Name, "la respuesta lleva el registro eliminado")

	resp = doJSON(t, app, fiber.MethodDelete, "/api/products/1", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducts_ValidacionDeCampos(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin", "admin123")

	cases := map[string]fiber.Map{
		"sin cantidad":      {"name": "Gel", "price": "4.5", "category": "Autre"},
		"sin precio":        {"name": "Gel", "quantity": 3, "category": "Autre"},
		"nombre en blanco":  {"name": "   ", "quantity": 3, "price": "4.5", "category": "Autre"},
		"cantidad negativa": {"name": "Gel", "quantity": -1, "price": "4.5", "category": "Autre"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doJSON(t, app, fiber.MethodPost, "/api/products", tok, body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			raw, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(raw), "Champs invalides")
		})
	}
}

func TestProducts_BusquedaPorQuery(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin", "admin123")

	for _, p := range []fiber.Map{
		{"name": "Gel", "quantity": 3, "price": "4.5", "category": "Alimentaire"},
		{"name": "Armoire", "quantity": 30, "price": "120", "category": "Meubles"},
	} {
		resp := doJSON(t, app, fiber.MethodPost, "/api/products", tok, p)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/products?q=gel", tok, nil)
	var list []dto.ProductResponse
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Gel", list[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del gate de administración
// ──────────────────────────────────────────────────────────────────────────────

// Un usuario estándar autenticado no accede al directorio: el middleware
// corta cada ruta de administración antes de ejecutar el handler.
func TestUsers_GateRechazaRolUser(t *testing.T) {
	app, store := buildTestApp(t)
	tok := login(t, app, "user", "user123")

	resp := doJSON(t, app, fiber.MethodGet, "/api/users", tok, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
	assert.Contains(t, string(body), "Droits administrateur requis")
	assert.NotContains(t, string(body), "password", "el cuerpo del 403 no filtra el directorio")

	// Las mutaciones también se cortan, incluso intentando escalar a admin.
	resp = doJSON(t, app, fiber.MethodPost, "/api/users", tok, dto.CreateUserRequest{
		Username: "intruso", Password: "pw", Role: "admin",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var adminID string
	for _, u := range store.ListUsers() {
		if u.Username == "admin" {
			adminID = u.ID
		}
	}
	require.NotEmpty(t, adminID)

	resp = doJSON(t, app, fiber.MethodPatch, "/api/users/"+adminID+"/status", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/users/"+adminID, tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	users := store.ListUsers()
	require.Len(t, users, 2, "el directorio queda exactamente como arrancó")
	for _, u := range users {
		assert.Equal(t, entity.StatusActive, u.Status)
		assert.NotEqual(t, "intruso", u.Username)
	}
}

// La autorización la decide la sesión del Store, no el token: un token de
// admin emitido antes deja de servir cuando la sesión vigente es de otro.
func TestUsers_GateSigueLaSesionDelStore(t *testing.T) {
	app, _ := buildTestApp(t)
	adminTok := login(t, app, "admin", "admin123")
	_ = login(t, app, "user", "user123")

	resp := doJSON(t, app, fiber.MethodGet, "/api/users", adminTok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUsers_AltaYConflictos(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin", "admin123")

	resp := doJSON(t, app, fiber.MethodPost, "/api/users", tok, dto.CreateUserRequest{
		Username: "charlie", Password: "pw123", Role: "user",
	})
	var created dto.UserResponse
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Active", created.Status)

	resp = doJSON(t, app, fiber.MethodPost, "/api/users", tok, dto.CreateUserRequest{
		Username: "charlie", Password: "otro", Role: "user",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/users", tok, dto.CreateUserRequest{
		Username: "", Password: "pw", Role: "user",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Tous les champs sont obligatoires")
}

func TestUsers_AutoproteccionDelAdmin(t *testing.T) {
	app, store := buildTestApp(t)
	tok := login(t, app, "admin", "admin123")

	var adminID string
	for _, u := range store.ListUsers() {
		if u.Username == "admin" {
			adminID = u.ID
		}
	}
	require.NotEmpty(t, adminID)

	resp := doJSON(t, app, fiber.MethodPatch, "/api/users/"+adminID+"/status", tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SELF_MODIFICATION")
	assert.Contains(t, string(body), "Vous ne pouvez pas modifier votre propre statut")

	resp = doJSON(t, app, fiber.MethodDelete, "/api/users/"+adminID, tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Vous ne pouvez pas supprimer votre propre compte")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests export / import
// ──────────────────────────────────────────────────────────────────────────────

func TestExportCSV_VacioYPoblado(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := login(t, app, "admin", "admin123")

	resp := doJSON(t, app, fiber.MethodGet, "/api/export/csv", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "sin productos no hay archivo")

	created := doJSON(t, app, fiber.MethodPost, "/api/products", tok, fiber.Map{
		"name": "Gel", "quantity": 3, "price": "4.5", "category": "Alimentaire",
	})
	created.Body.Close()
	require.Equal(t, http.StatusCreated, created.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/export/csv", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "stock_export_")

	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	assert.True(t, strings.HasPrefix(s, "\uFEFF"), "el CSV va con BOM para Excel")
	assert.Contains(t, s, `1;"Gel";3;4.50;"Alimentaire";"Stock Bas"`)
}

func TestImport_ReemplazaElEstado(t *testing.T) {
	app, store := buildTestApp(t)
	tok := login(t, app, "admin", "admin123")

	backup := `{
	  "products": [{"id": 7, "name": "Clavier", "quantity": 12, "price": 25, "category": "Électronique"}],
	  "users": [{"username": "admin", "password": "admin123", "role": "admin", "status": "Active"}],
	  "currentUser": {"username": "admin", "role": "admin"}
	}`
	resp := doJSON(t, app, fiber.MethodPost, "/api/import", tok, json.RawMessage(backup))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Import JSON réussi !")

	products := store.ListProducts()
	require.Len(t, products, 1)
	assert.Equal(t, int64(7), products[0].ID)
	assert.NotEmpty(t, store.ListUsers()[0].ID, "los usuarios importados reciben id")
}

func TestImport_ArchivoInvalidoNoTocaElEstado(t *testing.T) {
	app, store := buildTestApp(t)
	tok := login(t, app, "admin", "admin123")
	before := store.ListUsers()

	resp := doJSON(t, app, fiber.MethodPost, "/api/import", tok, json.RawMessage(`{"products": []}`))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_IMPORT")
	assert.Contains(t, string(body), "Fichier JSON invalide")

	assert.Equal(t, before, store.ListUsers(), "el estado vigente queda intacto")
}
