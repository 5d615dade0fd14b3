package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/services"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage/memory"
)

// syncSaver writes straight to the store so tests see persisted state
// without the background worker.
type syncSaver struct {
	kv *memory.Store
}

func (s *syncSaver) Save(key string, value []byte) {
	_ = s.kv.Set(context.Background(), key, value)
}

func (s *syncSaver) Remove(key string) {
	_ = s.kv.Delete(context.Background(), key)
}

func newTestServer(t *testing.T) (*httptest.Server, *services.App) {
	t.Helper()

	kv := memory.New()
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})

	var seq int
	app := services.NewApp(context.Background(), kv, &syncSaver{kv: kv}, logger, services.Options{
		NewID: func() string {
			seq++
			return fmt.Sprintf("id%d", seq)
		},
	})

	srv := NewServer(":0", app, logger)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})
	return ts, app
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, raw
}

func register(t *testing.T, ts *httptest.Server, email string) {
	t.Helper()
	resp, raw := doJSON(t, ts, http.MethodPost, "/api/register", map[string]string{
		"email": email, "password": "secret",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register = %d, body %s", resp.StatusCode, raw)
	}
}

func TestRequiresAuthentication(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/api/transactions", "/api/categories", "/api/goals", "/api/dashboard", "/api/settings"} {
		resp, raw := doJSON(t, ts, http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s = %d, want 401", path, resp.StatusCode)
		}
		var body struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &body); err != nil || body.Error != "not_authenticated" {
			t.Errorf("GET %s body = %s, want not_authenticated", path, raw)
		}
	}
}

func TestRegisterSeedsWorkspace(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	resp, raw := doJSON(t, ts, http.MethodGet, "/api/transactions", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list transactions = %d", resp.StatusCode)
	}
	var body struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
		Totals struct {
			Balance string `json:"balance"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Items) != 3 {
		t.Fatalf("seed transactions = %d, want 3", len(body.Items))
	}
	if body.Totals.Balance != "3102.5" {
		t.Errorf("seed balance = %s, want 3102.5", body.Totals.Balance)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	resp, raw := doJSON(t, ts, http.MethodPost, "/api/register", map[string]string{
		"email": "ana@example.com", "password": "other",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register = %d, want 409 (body %s)", resp.StatusCode, raw)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/login", map[string]string{
		"email": "ana@example.com", "password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad login = %d, want 401", resp.StatusCode)
	}
}

func TestCreateTransactionAcceptsCommaAmount(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	resp, raw := doJSON(t, ts, http.MethodPost, "/api/transactions", map[string]string{
		"title": "Cinema", "amount": "-35,90",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create = %d, body %s", resp.StatusCode, raw)
	}

	_, raw = doJSON(t, ts, http.MethodGet, "/api/transactions", nil)
	var body struct {
		Items []struct {
			Title  string `json:"title"`
			Amount string `json:"amount"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Newest first
	if body.Items[0].Title != "Cinema" || body.Items[0].Amount != "-35.9" {
		t.Errorf("first item = %+v, want Cinema -35.9", body.Items[0])
	}
}

func TestCreateTransactionRejectsZeroAmount(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	resp, raw := doJSON(t, ts, http.MethodPost, "/api/transactions", map[string]string{
		"title": "Nada", "amount": "0",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("zero amount = %d, want 422 (body %s)", resp.StatusCode, raw)
	}
}

func TestDeleteCategoryKeepsTransactions(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	// Seed ledger has a c_food expense; removing the category must not
	// touch it, only reroute it to the uncategorized bucket.
	resp, _ := doJSON(t, ts, http.MethodDelete, "/api/categories/c_food", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete category = %d", resp.StatusCode)
	}

	_, raw := doJSON(t, ts, http.MethodGet, "/api/transactions", nil)
	var txBody struct {
		Items []any `json:"items"`
	}
	if err := json.Unmarshal(raw, &txBody); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(txBody.Items) != 3 {
		t.Errorf("transactions after category delete = %d, want 3", len(txBody.Items))
	}

	_, raw = doJSON(t, ts, http.MethodGet, "/api/categories", nil)
	var catBody struct {
		Sums []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"sums"`
	}
	if err := json.Unmarshal(raw, &catBody); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	found := false
	for _, sum := range catBody.Sums {
		if sum.ID == "__uncat" {
			found = true
			if sum.Name != "Outros" || sum.Value != "85.5" {
				t.Errorf("uncategorized sum = %+v, want Outros 85.5", sum)
			}
		}
	}
	if !found {
		t.Error("uncategorized bucket missing after category delete")
	}
}

func TestGoalContributionFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	resp, raw := doJSON(t, ts, http.MethodPost, "/api/goals", map[string]string{
		"title": "Viagem", "target": "500",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create goal = %d, body %s", resp.StatusCode, raw)
	}
	var goal struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &goal); err != nil {
		t.Fatalf("unmarshal goal: %v", err)
	}

	// Requested amount exceeds the remaining gap, contribution clamps.
	resp, raw = doJSON(t, ts, http.MethodPost, "/api/goals/"+goal.ID+"/contribute", map[string]string{
		"amount": "600",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("contribute = %d, body %s", resp.StatusCode, raw)
	}
	var result struct {
		OK          bool   `json:"ok"`
		Contributed string `json:"contributed"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if !result.OK || result.Contributed != "500" {
		t.Errorf("contribution = %+v, want clamped to 500", result)
	}

	// The mirroring ledger entry is prepended.
	_, raw = doJSON(t, ts, http.MethodGet, "/api/transactions", nil)
	var txBody struct {
		Items []struct {
			Title  string `json:"title"`
			Amount string `json:"amount"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &txBody); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if txBody.Items[0].Title != "Economia: Viagem" || txBody.Items[0].Amount != "-500" {
		t.Errorf("contribution entry = %+v, want Economia: Viagem -500", txBody.Items[0])
	}
}

func TestContributeInsufficientBalance(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	_, raw := doJSON(t, ts, http.MethodPost, "/api/goals", map[string]string{
		"title": "Carro", "target": "50000",
	})
	var goal struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &goal); err != nil {
		t.Fatalf("unmarshal goal: %v", err)
	}

	// Seed balance is 3102.5; asking for more must not touch either store.
	resp, raw := doJSON(t, ts, http.MethodPost, "/api/goals/"+goal.ID+"/contribute", map[string]string{
		"amount": "4000",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("contribute = %d, want 409 (body %s)", resp.StatusCode, raw)
	}

	_, raw = doJSON(t, ts, http.MethodGet, "/api/goals", nil)
	var goals []struct {
		Saved string `json:"saved"`
	}
	if err := json.Unmarshal(raw, &goals); err != nil {
		t.Fatalf("unmarshal goals: %v", err)
	}
	if goals[0].Saved != "0" {
		t.Errorf("goal saved = %s, want 0 after rejected contribution", goals[0].Saved)
	}
}

func TestContributeUnknownGoal(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/goals/g_missing/contribute", map[string]string{
		"amount": "10",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("contribute to unknown goal = %d, want 404", resp.StatusCode)
	}
}

func TestDashboardReflectsMutations(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	_, raw := doJSON(t, ts, http.MethodGet, "/api/dashboard", nil)
	var before struct {
		FormattedBalance string `json:"formattedBalance"`
	}
	if err := json.Unmarshal(raw, &before); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if before.FormattedBalance != "$3.102,50" {
		t.Errorf("seed balance = %s, want $3.102,50", before.FormattedBalance)
	}

	// Mutation must invalidate the cached dashboard.
	resp, _ := doJSON(t, ts, http.MethodPost, "/api/transactions", map[string]string{
		"title": "Aluguel", "amount": "-1000",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create = %d", resp.StatusCode)
	}

	_, raw = doJSON(t, ts, http.MethodGet, "/api/dashboard", nil)
	var after struct {
		FormattedBalance string `json:"formattedBalance"`
	}
	if err := json.Unmarshal(raw, &after); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if after.FormattedBalance != "$2.102,50" {
		t.Errorf("balance after mutation = %s, want $2.102,50", after.FormattedBalance)
	}
}

func TestSessionLifecycle(t *testing.T) {
	ts, _ := newTestServer(t)

	_, raw := doJSON(t, ts, http.MethodGet, "/api/session", nil)
	var sess struct {
		Authenticated bool   `json:"authenticated"`
		Email         string `json:"email"`
	}
	if err := json.Unmarshal(raw, &sess); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sess.Authenticated {
		t.Error("fresh server should have no session")
	}

	register(t, ts, "ana@example.com")
	_, raw = doJSON(t, ts, http.MethodGet, "/api/session", nil)
	if err := json.Unmarshal(raw, &sess); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !sess.Authenticated || sess.Email != "ana@example.com" {
		t.Errorf("session = %+v, want ana@example.com", sess)
	}

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/logout", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout = %d", resp.StatusCode)
	}
	_, raw = doJSON(t, ts, http.MethodGet, "/api/session", nil)
	if err := json.Unmarshal(raw, &sess); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sess.Authenticated {
		t.Error("session should be cleared after logout")
	}
}

func TestToggleDarkMode(t *testing.T) {
	ts, _ := newTestServer(t)
	register(t, ts, "ana@example.com")

	_, raw := doJSON(t, ts, http.MethodGet, "/api/settings", nil)
	var settings struct {
		DarkMode bool `json:"darkMode"`
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !settings.DarkMode {
		t.Error("default dark mode should be on")
	}

	_, raw = doJSON(t, ts, http.MethodPost, "/api/settings/toggle", nil)
	if err := json.Unmarshal(raw, &settings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if settings.DarkMode {
		t.Error("dark mode should toggle off")
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, _ := doJSON(t, ts, http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, resp.StatusCode)
		}
	}
}
