package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/fulfillment"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stockflow/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stockflow/pkg/jwt"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: API completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	apiWhA   = "wh-a"
	apiWhB   = "wh-b"
	apiLocA1 = "loc-a1"
	apiProdP = "prod-p"
)

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	store.AddWarehouse(&entity.Warehouse{ID: apiWhA, Code: "A", Name: "Bodega A"})
	store.AddWarehouse(&entity.Warehouse{ID: apiWhB, Code: "B", Name: "Bodega B"})
	store.AddLocation(&entity.Location{ID: apiLocA1, WarehouseID: apiWhA, Code: "L1"})
	store.AddProduct(&entity.Product{ID: apiProdP, SKU: "SKU-P", Name: "Producto P", Unit: "UND", ReorderLevel: 20})

	log := logger.Nop()
	refs := inventory.NewReferences(store)
	prefixes := inventory.DefaultPrefixes()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ReceiptUC:       inventory.NewReceiptUseCase(store, refs, prefixes, log),
		AdjustmentUC:    inventory.NewAdjustmentUseCase(store, refs, log),
		StockUC:         inventory.NewStockUseCase(store, refs),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(store, refs),
		DeliveryUC:      fulfillment.NewDeliveryUseCase(store, refs, prefixes, log),
		TransferUC:      fulfillment.NewTransferUseCase(store, refs, prefixes, log),
		RequisitionUC:   fulfillment.NewRequisitionUseCase(store, refs, prefixes, log),
		WarehouseUC:     usecase.NewWarehouseUseCase(store),
		ProductUC:       usecase.NewProductUseCase(store),
		Hydrator:        dto.NewHydrator(store),
		Log:             log,
		JWTSecret:       testJWTSecret,
	})
	return app
}

func bearer(t *testing.T, userID, role, warehouseID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, userID, role, warehouseID)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call ejecuta la petición y decodifica el cuerpo JSON en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, auth string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Health(t *testing.T) {
	app := buildAPI(t)
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health", "", nil, nil))
}

func TestAPI_SinTokenRetorna401(t *testing.T) {
	app := buildAPI(t)
	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/warehouses", "", nil, &errBody)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", errBody.Code)
}

func TestAPI_RecepcionValidadaIngresaStock(t *testing.T) {
	app := buildAPI(t)
	op := bearer(t, "u-op-a", entity.RoleOperator, apiWhA)

	var created dto.ReceiptResponse
	status := call(t, app, http.MethodPost, "/api/receipts", op, dto.CreateReceiptRequest{
		WarehouseID:  apiWhA,
		SupplierName: "Proveedor X",
		Lines:        []dto.ReceiptLineRequest{{ProductID: apiProdP, LocationID: apiLocA1, Quantity: 10}},
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "REC/00001", created.Number)
	assert.Equal(t, entity.ReceiptStatusWaiting, created.Status)
	require.Len(t, created.Lines, 1)
	assert.Equal(t, "SKU-P", created.Lines[0].ProductSKU)
	assert.Equal(t, "L1", created.Lines[0].LocationCode)
	assert.Equal(t, "Bodega A", created.WarehouseName)

	var validated dto.ReceiptResponse
	status = call(t, app, http.MethodPost, "/api/receipts/"+created.ID+"/validate", op, nil, &validated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.ReceiptStatusDone, validated.Status)
	assert.Equal(t, "u-op-a", validated.ValidatedBy)

	var again dto.ErrorResponse
	status = call(t, app, http.MethodPost, "/api/receipts/"+created.ID+"/validate", op, nil, &again)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_VALIDATED", again.Code)

	var bal dto.BalanceResponse
	status = call(t, app, http.MethodGet,
		"/api/stock/balance?product_id="+apiProdP+"&warehouse_id="+apiWhA+"&location_id="+apiLocA1+"&required=5", op, nil, &bal)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(10), bal.Quantity)
	assert.Equal(t, int64(10), bal.WarehouseQuantity)
	assert.True(t, bal.Available)

	var movements dto.MovementListResponse
	status = call(t, app, http.MethodGet, "/api/stock/movements?warehouse_id="+apiWhA, op, nil, &movements)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, movements.Items, 1)
	assert.Equal(t, int64(10), movements.Items[0].Change)
	assert.Equal(t, created.ID, movements.Items[0].SourceDocID)
	assert.Equal(t, 50, movements.Page.Limit)
}

func TestAPI_CuerpoInvalidoRetornaCampos(t *testing.T) {
	app := buildAPI(t)
	op := bearer(t, "u-op-a", entity.RoleOperator, apiWhA)

	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/receipts", op, map[string]any{"warehouse_id": apiWhA}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Fields, "lines")
}

func TestAPI_BalanceSinParametrosRetorna400(t *testing.T) {
	app := buildAPI(t)
	op := bearer(t, "u-op-a", entity.RoleOperator, apiWhA)

	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/stock/balance", op, nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Fields, "product_id")
}

func TestAPI_BodegaFueraDeAlcanceRetorna403(t *testing.T) {
	app := buildAPI(t)
	opB := bearer(t, "u-op-b", entity.RoleOperator, apiWhB)

	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/receipts", opB, dto.CreateReceiptRequest{
		WarehouseID: apiWhA,
		Lines:       []dto.ReceiptLineRequest{{ProductID: apiProdP, Quantity: 1}},
	}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errBody.Code)

	status = call(t, app, http.MethodGet, "/api/warehouses/"+apiWhA+"/locations", opB, nil, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAPI_DocumentoInexistenteRetorna404(t *testing.T) {
	app := buildAPI(t)
	adm := bearer(t, "u-admin", entity.RoleAdmin, "")

	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/receipts/no-existe", adm, nil, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errBody.Code)
}

func TestAPI_EntregaSinStockRetornaFaltantes(t *testing.T) {
	app := buildAPI(t)
	op := bearer(t, "u-op-a", entity.RoleOperator, apiWhA)

	var d dto.DeliveryResponse
	status := call(t, app, http.MethodPost, "/api/deliveries", op, dto.CreateDeliveryRequest{
		WarehouseID: apiWhA,
		Lines:       []dto.DeliveryLineRequest{{ProductID: apiProdP, Quantity: 5}},
	}, &d)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, entity.DeliveryStatusDraft, d.Status)

	var errBody dto.ErrorResponse
	status = call(t, app, http.MethodPost, "/api/deliveries/"+d.ID+"/validate", op, nil, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
	require.Len(t, errBody.Shortages, 1)
	assert.Equal(t, 0, errBody.Shortages[0].LineIndex)
	assert.Equal(t, int64(5), errBody.Shortages[0].Requested)
	assert.Equal(t, int64(0), errBody.Shortages[0].Available)

	var still dto.DeliveryResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/deliveries/"+d.ID, op, nil, &still))
	assert.Equal(t, entity.DeliveryStatusDraft, still.Status)
}

func TestAPI_OperadorNoApruebaRequisiciones(t *testing.T) {
	app := buildAPI(t)
	op := bearer(t, "u-op-a", entity.RoleOperator, apiWhA)

	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/requisitions/cualquiera/approve", op,
		dto.ApproveRequisitionRequest{FinalSourceWarehouseID: apiWhB}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errBody.Code)
}

func TestAPI_AjusteYConciliacion(t *testing.T) {
	app := buildAPI(t)
	op := bearer(t, "u-op-a", entity.RoleOperator, apiWhA)

	var adj dto.AdjustmentResponse
	status := call(t, app, http.MethodPost, "/api/stock/adjustments", op, dto.AdjustmentRequest{
		ProductID:   apiProdP,
		WarehouseID: apiWhA,
		LocationID:  apiLocA1,
		NewQuantity: 4,
		Reason:      entity.AdjustmentReasonCountError,
	}, &adj)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(0), adj.PreviousQuantity)
	assert.Equal(t, int64(4), adj.Delta)
	require.NotNil(t, adj.Movement)
	assert.Equal(t, int64(4), adj.Movement.Change)

	var rec dto.ReconciliationResponse
	status = call(t, app, http.MethodGet,
		"/api/stock/reconcile?product_id="+apiProdP+"&warehouse_id="+apiWhA+"&location_id="+apiLocA1, op, nil, &rec)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(4), rec.Balance)
	assert.Equal(t, int64(4), rec.MovementSum)
	assert.True(t, rec.Consistent)

	var repl []dto.ReplenishmentSuggestionDTO
	status = call(t, app, http.MethodGet, "/api/stock/replenishment?warehouse_id="+apiWhA, op, nil, &repl)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, repl, 1)
	assert.Equal(t, int64(4), repl[0].CurrentStock)
	assert.Equal(t, int64(26), repl[0].SuggestedOrderQty)
}

func TestAPI_DatosMaestros(t *testing.T) {
	app := buildAPI(t)
	op := bearer(t, "u-op-a", entity.RoleOperator, apiWhA)

	var whs dto.WarehouseListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/warehouses", op, nil, &whs))
	require.Len(t, whs.Items, 2)
	assert.Equal(t, "A", whs.Items[0].Code)

	var locs []dto.LocationResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/warehouses/"+apiWhA+"/locations", op, nil, &locs))
	require.Len(t, locs, 1)
	assert.Equal(t, "L1", locs[0].Code)

	var prod dto.ProductResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/"+apiProdP, op, nil, &prod))
	assert.Equal(t, "SKU-P", prod.SKU)

	var products dto.ProductListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products?limit=10", op, nil, &products))
	assert.Equal(t, 1, products.Page.Total)
	assert.Equal(t, 10, products.Page.Limit)
}
