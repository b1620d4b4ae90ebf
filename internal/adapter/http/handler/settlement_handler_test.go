package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/moneybook-app/moneybook/internal/adapter/http/dto"
	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/usecase"
	"github.com/moneybook-app/moneybook/internal/usecase/mocks"
)

func newSettlementTestRouter(t *testing.T) (chi.Router, *mocks.MockTemplateRepository, *mocks.MockAssetRepository) {
	t.Helper()

	templateRepo := mocks.NewMockTemplateRepository()
	assetRepo := mocks.NewMockAssetRepository()

	uc := usecase.NewSettlementUseCase(usecase.SettlementConfig{
		TxManager:      mocks.NewMockTransactionManager(),
		TemplateRepo:   templateRepo,
		EntryRepo:      mocks.NewMockEntryRepository(),
		AssetRepo:      assetRepo,
		SettlementRepo: mocks.NewMockSettlementRepository(),
		IDGen:          mocks.NewMockIDGenerator(),
	})

	h := NewSettlementHandler(uc)

	r := chi.NewRouter()
	r.Route("/settlements/{ledgerType}", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Post("/settle", h.Settle)
		r.Post("/rollback", h.Rollback)
	})

	return r, templateRepo, assetRepo
}

func seedFixedIncome(t *testing.T, templateRepo *mocks.MockTemplateRepository, assetRepo *mocks.MockAssetRepository) {
	t.Helper()

	templateRepo.Create(context.Background(), &domain.RecurringTemplate{
		ID:                   "tpl-1",
		UserID:               "user-1",
		LedgerType:           domain.LedgerTypeIncome,
		Name:                 "salary",
		Amount:               decimal.NewFromInt(3000000),
		Cycle:                domain.CycleMonthly,
		BillingDay:           25,
		IsFixedIncome:        true,
		ReflectToLiquidAsset: true,
	})
	assetRepo.Add(&domain.Asset{
		ID:            "asset-1",
		UserID:        "user-1",
		Name:          "checking",
		Category:      domain.AssetCategoryCash,
		CurrentValue:  decimal.NewFromInt(1000000),
		ValuationDate: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	})
}

func TestSettlementHandler_Settle(t *testing.T) {
	router, templateRepo, assetRepo := newSettlementTestRouter(t)
	seedFixedIncome(t, templateRepo, assetRepo)

	body := `{"user_id":"user-1","month":"2024-02"}`
	req := httptest.NewRequest(http.MethodPost, "/settlements/income/settle", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp dto.SettleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.TargetMonth != "2024-02" || resp.CreatedCount != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.TotalSettledAmount.Equal(decimal.NewFromInt(3000000)) {
		t.Fatalf("TotalSettledAmount = %s, want 3000000", resp.TotalSettledAmount)
	}
}

func TestSettlementHandler_SettleTwiceConflicts(t *testing.T) {
	router, templateRepo, assetRepo := newSettlementTestRouter(t)
	seedFixedIncome(t, templateRepo, assetRepo)

	for i, wantStatus := range []int{http.StatusOK, http.StatusConflict} {
		body := `{"user_id":"user-1","month":"2024-02"}`
		req := httptest.NewRequest(http.MethodPost, "/settlements/income/settle", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != wantStatus {
			t.Fatalf("request %d: expected %d, got %d body=%s", i+1, wantStatus, rec.Code, rec.Body.String())
		}
	}
}

func TestSettlementHandler_SettleWithoutLiquidAsset(t *testing.T) {
	router, templateRepo, _ := newSettlementTestRouter(t)

	// A reflecting template but no cash or deposit asset to absorb it.
	templateRepo.Create(context.Background(), &domain.RecurringTemplate{
		ID:                   "tpl-1",
		UserID:               "user-1",
		LedgerType:           domain.LedgerTypeIncome,
		Name:                 "salary",
		Amount:               decimal.NewFromInt(3000000),
		Cycle:                domain.CycleMonthly,
		BillingDay:           25,
		IsFixedIncome:        true,
		ReflectToLiquidAsset: true,
	})

	body := `{"user_id":"user-1","month":"2024-02"}`
	req := httptest.NewRequest(http.MethodPost, "/settlements/income/settle", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Code != CodeStorageError {
		t.Fatalf("expected code %s, got %s", CodeStorageError, resp.Code)
	}
}

func TestSettlementHandler_SettleInvalidMonth(t *testing.T) {
	router, _, _ := newSettlementTestRouter(t)

	body := `{"user_id":"user-1","month":"2024-2"}`
	req := httptest.NewRequest(http.MethodPost, "/settlements/income/settle", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Code != CodeValidation {
		t.Fatalf("expected code %s, got %s", CodeValidation, resp.Code)
	}
}

func TestSettlementHandler_RollbackWithoutSettle(t *testing.T) {
	router, _, _ := newSettlementTestRouter(t)

	body := `{"user_id":"user-1","month":"2024-02"}`
	req := httptest.NewRequest(http.MethodPost, "/settlements/income/rollback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Code != CodeNotSettled {
		t.Fatalf("expected code %s, got %s", CodeNotSettled, resp.Code)
	}
}

func TestSettlementHandler_StatusRoundTrip(t *testing.T) {
	router, templateRepo, assetRepo := newSettlementTestRouter(t)
	seedFixedIncome(t, templateRepo, assetRepo)

	statusOf := func(t *testing.T) bool {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/settlements/income/status?user_id=user-1&month=2024-02", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp dto.SettlementStatusResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		return resp.Settled
	}

	if statusOf(t) {
		t.Fatal("expected unsettled before settle")
	}

	body := `{"user_id":"user-1","month":"2024-02"}`
	req := httptest.NewRequest(http.MethodPost, "/settlements/income/settle", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("settle failed: %d", rec.Code)
	}

	if !statusOf(t) {
		t.Fatal("expected settled after settle")
	}

	req = httptest.NewRequest(http.MethodPost, "/settlements/income/rollback", strings.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("rollback failed: %d", rec.Code)
	}

	var rollback dto.RollbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &rollback); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if rollback.DeletedCount != 1 || !rollback.ReversedAmount.Equal(decimal.NewFromInt(3000000)) {
		t.Fatalf("unexpected rollback response: %+v", rollback)
	}

	if statusOf(t) {
		t.Fatal("expected unsettled after rollback")
	}
}
