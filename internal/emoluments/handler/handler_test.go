package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pratico/internal/emoluments"
	jwttoken "pratico/internal/jwt_token"
	"pratico/pkg/testutil"
)

func newTestRouter(t *testing.T) (chi.Router, *jwttoken.JWTService) {
	t.Helper()

	store := emoluments.NewMemoryStore()
	service := emoluments.NewService(store)
	jwtService := jwttoken.NewJWTService("test-signing-key", "pratico")

	table, err := service.UpsertTable(context.Background(), &emoluments.Table{
		UF:   "SP",
		Year: 2026,
		Brackets: []emoluments.Bracket{
			{RangeFrom: 0, RangeTo: 100_000, Amount: 800},
			{RangeFrom: 100_000.01, RangeTo: 500_000, Amount: 2500},
		},
	})
	require.NoError(t, err)
	require.NoError(t, service.ActivateTable(context.Background(), table.ID))

	router := chi.NewRouter()
	New(service, jwtService, slog.Default()).Register(router)
	return router, jwtService
}

func TestDeedCostLookup(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/emolumentos/escritura?uf=sp&valor=250000"))

	testutil.AssertStatus(t, rr, http.StatusOK)
	cost := testutil.UnmarshalResponse[emoluments.DeedCost](t, rr)
	assert.Equal(t, "SP", cost.UF)
	assert.Equal(t, 2500.0, cost.Amount)
}

func TestDeedCostRequiresParams(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/emolumentos/escritura?valor=1000"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rr, "bad_request")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/emolumentos/escritura?uf=SP&valor=abc"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestDeedCostUnknownUF(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/emolumentos/escritura?uf=AC&valor=1000"))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/admin/emolumentos/tabelas"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminRoutesRejectNonAdminRole(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token, err := jwtService.GenerateToken("broker", "corretor", time.Hour)
	require.NoError(t, err)

	req := testutil.NewRequest(t, http.MethodGet, "/admin/emolumentos/tabelas")
	req.Header.Set("Authorization", "Bearer "+token)

	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusForbidden)
}

func TestUpsertAndActivateTable(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token, err := jwtService.GenerateToken("ops", "admin", time.Hour)
	require.NoError(t, err)

	body := map[string]any{
		"uf":   "RJ",
		"year": 2026,
		"brackets": []map[string]any{
			{"range_from": 0, "range_to": 200_000, "amount": 1800},
		},
	}
	req := testutil.NewJSONRequest(t, http.MethodPut, "/admin/emolumentos/tabelas", body)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	saved := testutil.UnmarshalResponse[emoluments.Table](t, rr)
	assert.Equal(t, "RJ", saved.UF)
	assert.Equal(t, emoluments.TableDraft, saved.Status)
	require.NotEmpty(t, saved.ID)

	req = testutil.NewRequest(t, http.MethodPost, "/admin/emolumentos/tabelas/"+saved.ID+"/ativar")
	req.Header.Set("Authorization", "Bearer "+token)
	rr = testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertJSONContains(t, rr, "ok", true)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/emolumentos/economia?uf=SP&valor=150000"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	economy := testutil.UnmarshalResponse[emoluments.Economy](t, rr)
	assert.Equal(t, "RJ", economy.BestUF)
}

func TestUpsertTableValidation(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token, err := jwtService.GenerateToken("ops", "admin", time.Hour)
	require.NoError(t, err)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/admin/emolumentos/tabelas", map[string]any{
		"uf":   "SAOPAULO",
		"year": 2026,
	})
	req.Header.Set("Authorization", "Bearer "+token)

	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}
