package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/benjisbeans/kapaiputea-app/internal/app/gamification"
	"github.com/benjisbeans/kapaiputea-app/internal/domain"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/catalog"
)

// ─── Learning ───────────────────────────────────────────────────────────────

type lessonEntry struct {
	domain.Lesson
	Completed bool `json:"completed"`
}

// GET /api/lessons
func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	out := make([]lessonEntry, 0, len(catalog.Lessons))
	for _, l := range catalog.Lessons {
		done, err := s.gam.LessonDone(l.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = append(out, lessonEntry{Lesson: l, Completed: done})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"lessons": out})
}

// POST /api/lessons/{id}/complete
func (s *Server) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := s.gam.CompleteLesson(id, s.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/progress
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	pr, err := s.gam.CurrentProgress(s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pr)
}

// GET /api/badges
func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := s.gam.Badges()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

// GET /api/xp/transactions?limit=N
func (s *Server) handleXPTransactions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50, 1, 500)
	txs, err := s.gam.RecentTransactions(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if txs == nil {
		txs = []domain.XPTransaction{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": txs})
}

// ─── Onboarding ─────────────────────────────────────────────────────────────

type quizSubmitRequest struct {
	DisplayName string             `json:"display_name"`
	Answers     domain.QuizAnswers `json:"answers"`
}

// POST /api/quiz/submit
func (s *Server) handleQuizSubmit(w http.ResponseWriter, r *http.Request) {
	var req quizSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		writeError(w, http.StatusBadRequest, "answers required")
		return
	}

	res, err := s.profiles.SubmitQuiz(req.DisplayName, req.Answers, s.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/profile
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	level := gamification.LevelFromXP(p.TotalXP)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile":    p,
		"level":      level,
		"level_name": gamification.LevelName(level),
	})
}

// ─── Virtual Investing ──────────────────────────────────────────────────────

// GET /api/invest
func (s *Server) handleInvestOverview(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	portfolio, err := s.market.Portfolio(now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stocks":    s.market.Listings(now),
		"portfolio": portfolio,
	})
}

type tradeRequest struct {
	Symbol string `json:"symbol"`
	Type   string `json:"type"`
	Shares int    `json:"shares"`
}

// POST /api/invest
func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var trade *domain.Trade
	var err error
	switch domain.TradeType(req.Type) {
	case domain.TradeBuy:
		trade, err = s.market.Buy(req.Symbol, req.Shares, s.now())
	case domain.TradeSell:
		trade, err = s.market.Sell(req.Symbol, req.Shares, s.now())
	default:
		writeError(w, http.StatusBadRequest, "type must be buy or sell")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"trade": trade})
}

// GET /api/invest/{symbol}/history?days=N
func (s *Server) handlePriceHistory(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	days := queryInt(r, "days", 30, 1, 365)

	prices, err := s.market.History(symbol, s.now(), days)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"days":   days,
		"prices": prices,
	})
}

// ─── Side Hustle ────────────────────────────────────────────────────────────

// GET /api/hustle
func (s *Server) handleHustleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.hustle.Status(s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"business_types": catalog.BusinessTypes,
		"upgrades":       catalog.Upgrades,
		"status":         st,
	})
}

type hustleActionRequest struct {
	Action       string `json:"action"`
	BusinessType string `json:"business_type,omitempty"`
	UpgradeID    string `json:"upgrade_id,omitempty"`
}

// POST /api/hustle
func (s *Server) handleHustleAction(w http.ResponseWriter, r *http.Request) {
	var req hustleActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := s.now()
	switch req.Action {
	case "start":
		b, err := s.hustle.Start(req.BusinessType, now)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"business": b})
	case "collect":
		res, err := s.hustle.Collect(now)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	case "upgrade":
		res, err := s.hustle.Upgrade(req.UpgradeID, now)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	default:
		writeError(w, http.StatusBadRequest, "action must be start, collect, or upgrade")
	}
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// queryInt parses an integer query param with a default and clamping bounds.
func queryInt(r *http.Request, key string, def, min, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return n
}
