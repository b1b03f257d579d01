package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/app/gamification"
	"github.com/benjisbeans/kapaiputea-app/internal/app/hustle"
	"github.com/benjisbeans/kapaiputea-app/internal/app/market"
	"github.com/benjisbeans/kapaiputea-app/internal/app/profile"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/sqlite"
)

var apiNow = time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gam := gamification.NewService(db)
	prof := profile.NewService(db, gam, rand.New(rand.NewSource(1)))
	srv := NewServer(gam, prof, market.NewService(db), hustle.NewService(db))
	srv.SetClock(func() time.Time { return apiNow })
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: bad JSON: %v\n%s", method, path, err, rec.Body.String())
		}
	}
	return rec, out
}

func TestHealthAndVersion(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, out := doJSON(t, h, "GET", "/health", "")
	if rec.Code != http.StatusOK || out["status"] != "ok" {
		t.Errorf("health: %d %v", rec.Code, out)
	}

	rec, out = doJSON(t, h, "GET", "/api/version", "")
	if rec.Code != http.StatusOK || out["version"] != Version {
		t.Errorf("version: %d %v", rec.Code, out)
	}
}

func TestCompleteLessonEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, out := doJSON(t, h, "POST", "/api/lessons/b101-01/complete", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %v", rec.Code, out)
	}
	breakdown := out["breakdown"].(map[string]interface{})
	if breakdown["total"].(float64) != 75 {
		t.Errorf("total = %v, want 75", breakdown["total"])
	}
	if out["current_streak"].(float64) != 1 {
		t.Errorf("streak = %v", out["current_streak"])
	}

	// Repeat completion is a 400
	rec, _ = doJSON(t, h, "POST", "/api/lessons/b101-01/complete", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate status = %d, want 400", rec.Code)
	}

	// Unknown lesson is a 404
	rec, _ = doJSON(t, h, "POST", "/api/lessons/nope/complete", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown status = %d, want 404", rec.Code)
	}
}

func TestLessonsAndProgressEndpoints(t *testing.T) {
	h := newTestServer(t).Handler()
	_, _ = doJSON(t, h, "POST", "/api/lessons/b101-01/complete", "")

	rec, out := doJSON(t, h, "GET", "/api/lessons", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("lessons status %d", rec.Code)
	}
	lessons := out["lessons"].([]interface{})
	var completed int
	for _, l := range lessons {
		if l.(map[string]interface{})["completed"].(bool) {
			completed++
		}
	}
	if completed != 1 {
		t.Errorf("completed = %d, want 1", completed)
	}

	rec, out = doJSON(t, h, "GET", "/api/progress", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("progress status %d", rec.Code)
	}
	if out["total_xp"].(float64) != 85 { // 75 + first-steps bonus
		t.Errorf("total_xp = %v, want 85", out["total_xp"])
	}
	if out["level_name"] != "Money Newbie" {
		t.Errorf("level_name = %v", out["level_name"])
	}
}

func TestBadgesEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	_, _ = doJSON(t, h, "POST", "/api/lessons/b101-01/complete", "")

	rec, out := doJSON(t, h, "GET", "/api/badges", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	badges := out["badges"].([]interface{})
	var earned int
	for _, b := range badges {
		if b.(map[string]interface{})["earned"].(bool) {
			earned++
		}
	}
	if earned != 1 {
		t.Errorf("earned = %d, want 1", earned)
	}
}

func TestQuizSubmitEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	body := `{"display_name":"Nikau","answers":{"stream":"trade","gender":"male","goals":["job","travel"]}}`
	rec, out := doJSON(t, h, "POST", "/api/quiz/submit", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %v", rec.Code, out)
	}
	if out["stream"] != "trade" {
		t.Errorf("stream = %v", out["stream"])
	}
	tag := out["tag"].(map[string]interface{})
	if tag["name"] == "" {
		t.Error("empty tag")
	}
	if out["xp_awarded"].(float64) != 100 {
		t.Errorf("xp_awarded = %v", out["xp_awarded"])
	}

	rec, out = doJSON(t, h, "GET", "/api/profile", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status %d", rec.Code)
	}
	p := out["profile"].(map[string]interface{})
	if p["display_name"] != "Nikau" || p["onboarding_completed"] != true {
		t.Errorf("profile = %v", p)
	}

	// Missing answers is a 400
	rec, _ = doJSON(t, h, "POST", "/api/quiz/submit", `{"display_name":"X"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("no-answers status = %d, want 400", rec.Code)
	}
}

func TestInvestEndpoints(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, out := doJSON(t, h, "GET", "/api/invest", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("overview status %d", rec.Code)
	}
	stocks := out["stocks"].([]interface{})
	if len(stocks) != 8 {
		t.Errorf("stocks = %d, want 8", len(stocks))
	}
	portfolio := out["portfolio"].(map[string]interface{})
	if portfolio["bank_balance"].(float64) != sqlite.StartingBankBalance {
		t.Errorf("balance = %v", portfolio["bank_balance"])
	}

	rec, out = doJSON(t, h, "POST", "/api/invest", `{"symbol":"KIWI","type":"buy","shares":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("buy status %d: %v", rec.Code, out)
	}
	trade := out["trade"].(map[string]interface{})
	if trade["shares"].(float64) != 5 || trade["type"] != "buy" {
		t.Errorf("trade = %v", trade)
	}

	// Selling more than held is a 400
	rec, _ = doJSON(t, h, "POST", "/api/invest", `{"symbol":"KIWI","type":"sell","shares":50}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversell status = %d, want 400", rec.Code)
	}

	// Bad side is a 400
	rec, _ = doJSON(t, h, "POST", "/api/invest", `{"symbol":"KIWI","type":"short","shares":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad side status = %d, want 400", rec.Code)
	}

	rec, out = doJSON(t, h, "GET", "/api/invest/KIWI/history?days=7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("history status %d", rec.Code)
	}
	if prices := out["prices"].([]interface{}); len(prices) != 7 {
		t.Errorf("prices = %d, want 7", len(prices))
	}

	rec, _ = doJSON(t, h, "GET", "/api/invest/NOPE/history", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown symbol status = %d, want 404", rec.Code)
	}
}

func TestHustleEndpoints(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, out := doJSON(t, h, "GET", "/api/hustle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if types := out["business_types"].([]interface{}); len(types) != 5 {
		t.Errorf("business types = %d, want 5", len(types))
	}

	// Collect before starting is a 404
	rec, _ = doJSON(t, h, "POST", "/api/hustle", `{"action":"collect"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("collect-no-business status = %d, want 404", rec.Code)
	}

	rec, out = doJSON(t, h, "POST", "/api/hustle", `{"action":"start","business_type":"food-truck"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("start status %d: %v", rec.Code, out)
	}

	rec, _ = doJSON(t, h, "POST", "/api/hustle", `{"action":"start","business_type":"lawn-care"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second start status = %d, want 400", rec.Code)
	}

	rec, out = doJSON(t, h, "POST", "/api/hustle", `{"action":"upgrade","upgrade_id":"marketing"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("upgrade status %d: %v", rec.Code, out)
	}
	if out["cost"].(float64) != 500 {
		t.Errorf("upgrade cost = %v", out["cost"])
	}

	rec, out = doJSON(t, h, "POST", "/api/hustle", `{"action":"collect"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("collect status %d: %v", rec.Code, out)
	}
	if out["collected"].(float64) != 0 {
		t.Errorf("collected = %v, want 0 right after start", out["collected"])
	}

	rec, _ = doJSON(t, h, "POST", "/api/hustle", `{"action":"demolish"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad action status = %d, want 400", rec.Code)
	}
}

func TestXPTransactionsEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	_, _ = doJSON(t, h, "POST", "/api/lessons/b101-01/complete", "")

	rec, out := doJSON(t, h, "GET", "/api/xp/transactions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	txs := out["transactions"].([]interface{})
	if len(txs) != 2 { // lesson award + badge bonus
		t.Errorf("transactions = %d, want 2", len(txs))
	}
}
