package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/xmlexport"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// newAPI arma la API completa sobre un almacén en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.Nop()

	receiptUC := inventory.NewReceiptUseCase(store, log)
	shipmentUC := inventory.NewShipmentUseCase(store, log)
	balanceUC := usecase.NewBalanceUseCase(repos.Balances)
	reportUC := usecase.NewReportUseCase(receiptUC, shipmentUC, balanceUC,
		pdf.NewMarotoRenderer("Almacén de prueba"), xmlexport.NewBalanceExporter("test"))

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		ResourceUC: usecase.NewResourceUseCase(repos.Resources, log),
		UnitUC:     usecase.NewUnitUseCase(repos.Units, log),
		ClientUC:   usecase.NewClientUseCase(repos.Clients, log),
		BalanceUC:  balanceUC,
		ReportUC:   reportUC,
		ReceiptUC:  receiptUC,
		ShipmentUC: shipmentUC,
		JWTSecret:  testJWTSecret,
	})
	return app
}

type client struct {
	t    *testing.T
	app  *fiber.App
	auth string
}

func (c client) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.auth)
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, out
}

// create hace POST y devuelve el id del recurso creado.
func (c client) create(path string, body any) int64 {
	c.t.Helper()
	resp, raw := c.do(http.MethodPost, path, body)
	require.Equal(c.t, http.StatusCreated, resp.StatusCode, string(raw))
	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(c.t, json.Unmarshal(raw, &out))
	return out.ID
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func line(resourceID, unitID int64, qty string) map[string]any {
	return map[string]any{"resource_id": resourceID, "unit_of_measure_id": unitID, "quantity": qty}
}

func TestAPI_FlujoDeDocumentos(t *testing.T) {
	app := newAPI(t)
	admin := client{t: t, app: app, auth: bearer(t, pkgjwt.RoleAdmin)}
	date := time.Now().Add(-time.Hour).Format(time.RFC3339)

	resID := admin.create("/api/resources", map[string]any{"name": "Cemento"})
	unitID := admin.create("/api/units", map[string]any{"name": "Saco"})
	clientID := admin.create("/api/clients", map[string]any{"name": "Obra", "address": "Calle 1"})

	receiptID := admin.create("/api/receipts", map[string]any{
		"number": "IN-1", "date": date, "resources": []any{line(resID, unitID, "10")},
	})
	shipmentID := admin.create("/api/shipments", map[string]any{
		"number": "OUT-1", "client_id": clientID, "date": date, "resources": []any{line(resID, unitID, "4")},
	})

	resp, raw := admin.do(http.MethodPut, fmt.Sprintf("/api/shipments/%d/approve", shipmentID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var sh dto.ShipmentResponse
	require.NoError(t, json.Unmarshal(raw, &sh))
	assert.Equal(t, "approved", sh.DocumentStatus)

	resp, raw = admin.do(http.MethodGet, fmt.Sprintf("/api/balance?resource_ids=%d", resID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bal dto.ListResponse[dto.BalanceResponse]
	require.NoError(t, json.Unmarshal(raw, &bal))
	require.Equal(t, 1, bal.Total)
	assert.Equal(t, "6", bal.Items[0].Quantity.String())

	// Editar el ingreso por debajo de lo despachado no procede.
	resp, raw = admin.do(http.MethodPut, fmt.Sprintf("/api/receipts/%d", receiptID), map[string]any{
		"number": "IN-1", "date": date, "resources": []any{line(resID, unitID, "3")},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, "INSUFFICIENT_BALANCE", e.Code)
	assert.Equal(t, "6", e.Details["available"])

	resp, _ = admin.do(http.MethodGet, fmt.Sprintf("/api/shipments/%d/pdf", shipmentID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp, raw = admin.do(http.MethodGet, "/api/balance/export.xml", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "<Balance")

	resp, raw = admin.do(http.MethodGet, "/api/receipts?numbers=IN-1,IN-9&date_to="+time.Now().Format("2006-01-02"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var receipts dto.ListResponse[dto.ReceiptResponse]
	require.NoError(t, json.Unmarshal(raw, &receipts))
	assert.Equal(t, 1, receipts.Total)

	resp, _ = admin.do(http.MethodDelete, fmt.Sprintf("/api/resources/%d", resID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAPI_MapeoDeErrores(t *testing.T) {
	app := newAPI(t)
	admin := client{t: t, app: app, auth: bearer(t, pkgjwt.RoleAdmin)}
	admin.create("/api/resources", map[string]any{"name": "Arena"})

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"no existe", http.MethodGet, "/api/resources/999", nil, http.StatusNotFound, "ENTITY_NOT_FOUND"},
		{"duplicado", http.MethodPost, "/api/resources", map[string]any{"name": "arena"}, http.StatusConflict, "DUPLICATE_ENTITY"},
		{"validación", http.MethodPost, "/api/units", map[string]any{"name": ""}, http.StatusBadRequest, "VALIDATION"},
		{"id inválido", http.MethodGet, "/api/units/abc", nil, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"fecha inválida", http.MethodGet, "/api/receipts?date_from=01-01-2025", nil, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"despacho sin líneas", http.MethodPost, "/api/shipments", map[string]any{
			"number": "OUT-1", "client_id": 1, "date": time.Now().Add(-time.Hour).Format(time.RFC3339), "resources": []any{},
		}, http.StatusBadRequest, "VALIDATION"},
		{"revocar inexistente", http.MethodPut, "/api/shipments/77/revoke", nil, http.StatusNotFound, "ENTITY_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := admin.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(raw))
			assert.Equal(t, tt.code, decodeError(t, raw).Code)
		})
	}
}

func TestAPI_ArchivarDosVecesEstadoInvalido(t *testing.T) {
	app := newAPI(t)
	admin := client{t: t, app: app, auth: bearer(t, pkgjwt.RoleAdmin)}
	id := admin.create("/api/clients", map[string]any{"name": "Cliente"})

	resp, _ := admin.do(http.MethodPut, fmt.Sprintf("/api/clients/%d/archive", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, raw := admin.do(http.MethodPut, fmt.Sprintf("/api/clients/%d/archive", id), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_STATUS", decodeError(t, raw).Code)

	resp, raw = admin.do(http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ListResponse[dto.ClientResponse]
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 0, list.Total)

	resp, raw = admin.do(http.MethodGet, "/api/clients?include_archived=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 1, list.Total)
}

func TestAPI_PermisosPorRol(t *testing.T) {
	app := newAPI(t)
	admin := client{t: t, app: app, auth: bearer(t, pkgjwt.RoleAdmin)}
	bodeguero := client{t: t, app: app, auth: bearer(t, pkgjwt.RoleBodeguero)}
	consulta := client{t: t, app: app, auth: bearer(t, pkgjwt.RoleConsulta)}

	id := bodeguero.create("/api/resources", map[string]any{"name": "Ladrillo"})

	resp, _ := consulta.do(http.MethodGet, "/api/resources", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = consulta.do(http.MethodPost, "/api/resources", map[string]any{"name": "Otro"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = bodeguero.do(http.MethodDelete, fmt.Sprintf("/api/resources/%d", id), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = admin.do(http.MethodDelete, fmt.Sprintf("/api/resources/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	anon := client{t: t, app: app}
	resp, _ = anon.do(http.MethodGet, "/api/resources", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
