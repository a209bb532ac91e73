/*
handlers.go - HTTP API handlers for the housing eligibility engine

PURPOSE:
  Exposes the eligibility evaluator via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to housing.

ENDPOINTS:
  Jurisdictions:
    GET    /api/jurisdictions                 List jurisdictions (active rules)
    GET    /api/jurisdictions/{code}          Get one jurisdiction
    GET    /api/jurisdictions/{code}/limits   Limits for ?household_size=N

  Assessments:
    POST   /api/assessments                   Evaluate a household (?format=text, ?rule_set=ID)

  Rule sets:
    GET    /api/rulesets                      List stored rule sets
    POST   /api/rulesets                      Create or replace a rule set
    GET    /api/rulesets/{id}                 Get one rule set
    POST   /api/rulesets/{id}/activate        Make a rule set active
    DELETE /api/rulesets/{id}                 Delete an inactive rule set

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: rule-set configurations (SQLite or in-memory)
  - RuleFactory: JSON to RuleSet conversion
  - Parsed rule sets cached behind an RWMutex; evaluation only reads them

REQUEST FLOW:
  1. Parse HTTP request (schema-checked for assessments)
  2. Convert to housing.EligibilityInput
  3. Evaluate against the active (or requested) rule set
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: invalid_input, schema_violation
  - 404: not_found
  - 409: conflict (deleting the active rule set)
  - 500: internal

PRIVACY:
  Assessments are never stored. Logs carry jurisdiction, verdict and
  note codes only; incomes and assets are never logged.

SEE ALSO:
  - dto.go: Request/response data structures
  - schema.go: Assessment request schema
  - scenarios.go: Sample households
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/housing-engine/factory"
	"github.com/warp/housing-engine/generic"
	"github.com/warp/housing-engine/housing"
	"github.com/warp/housing-engine/render"
	"github.com/warp/housing-engine/store"
)

const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       store.RuleSetStore
	RuleFactory *factory.RuleFactory

	logger *zap.Logger
	now    func() time.Time

	mu       sync.RWMutex
	ruleSets map[string]*housing.RuleSet
	activeID string
}

// NewHandler creates a new handler with the given store. The compiled-in
// rule set is available immediately; LoadRuleSets adds stored ones.
func NewHandler(st store.RuleSetStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := housing.DefaultRuleSet()
	return &Handler{
		Store:       st,
		RuleFactory: factory.NewRuleFactory(),
		logger:      logger,
		now:         time.Now,
		ruleSets:    map[string]*housing.RuleSet{def.ID: def},
		activeID:    def.ID,
	}
}

// LoadRuleSets seeds the store with the compiled-in rule set if it is
// missing, loads every stored rule set into the cache and selects the
// active one: the stored choice first, then fallback, then the default.
func (h *Handler) LoadRuleSets(ctx context.Context, fallback string) error {
	def := housing.DefaultRuleSet()
	existing, err := h.Store.GetRuleSet(ctx, def.ID)
	if err != nil {
		return fmt.Errorf("failed to look up default rule set: %w", err)
	}
	if existing == nil {
		cfg, err := h.RuleFactory.Marshal(def)
		if err != nil {
			return err
		}
		if err := h.Store.SaveRuleSet(ctx, store.RuleSetRecord{
			ID: def.ID, Name: def.Name, Year: def.Year, ConfigJSON: cfg,
		}); err != nil {
			return fmt.Errorf("failed to seed default rule set: %w", err)
		}
		h.logger.Info("seeded default rule set", zap.String("rule_set", def.ID))
	}

	records, err := h.Store.ListRuleSets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rule sets: %w", err)
	}

	loaded := map[string]*housing.RuleSet{def.ID: def}
	for _, r := range records {
		rs, err := h.RuleFactory.ParseRuleSet(r.ConfigJSON)
		if err != nil {
			h.logger.Warn("skipping invalid stored rule set", zap.String("rule_set", r.ID), zap.Error(err))
			continue
		}
		loaded[rs.ID] = rs
	}

	active, err := h.Store.ActiveRuleSet(ctx)
	if err != nil {
		return fmt.Errorf("failed to read active rule set: %w", err)
	}
	if _, ok := loaded[active]; !ok {
		active = fallback
	}
	if _, ok := loaded[active]; !ok {
		h.logger.Warn("configured rule set not found, using default",
			zap.String("rule_set", fallback), zap.String("default", def.ID))
		active = def.ID
	}

	h.mu.Lock()
	h.ruleSets = loaded
	h.activeID = active
	h.mu.Unlock()

	h.logger.Info("rule sets loaded", zap.Int("count", len(loaded)), zap.String("active", active))
	return nil
}

// ActiveRuleSet returns the rule set assessments use by default. It is
// never nil: if the active ID is missing from the cache the compiled-in
// rule set is returned.
func (h *Handler) ActiveRuleSet() *housing.RuleSet {
	h.mu.RLock()
	rs, ok := h.ruleSets[h.activeID]
	h.mu.RUnlock()
	if !ok {
		h.logger.Error("active rule set missing from cache, using default")
		return housing.DefaultRuleSet()
	}
	return rs
}

// ruleSet returns the requested rule set, or the active one for "".
func (h *Handler) ruleSet(id string) (*housing.RuleSet, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if id == "" {
		id = h.activeID
	}
	rs, ok := h.ruleSets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", generic.ErrRuleSetNotFound, id)
	}
	return rs, nil
}

// evaluate runs one assessment and records metrics for it.
func (h *Handler) evaluate(rs *housing.RuleSet, in housing.EligibilityInput) (housing.AssessmentResult, error) {
	start := time.Now()
	res, err := rs.Evaluate(in)
	EvaluationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		AssessmentsRejected.WithLabelValues(CodeInvalidInput).Inc()
		return res, err
	}

	AssessmentsTotal.WithLabelValues(string(res.Jurisdiction), outcomeLabel(res.Eligible)).Inc()
	for _, code := range res.Codes() {
		AssessmentNotesTotal.WithLabelValues(string(code)).Inc()
	}
	return res, nil
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness and database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, CodeInternal, "Database unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// JURISDICTION HANDLERS
// =============================================================================

// ListJurisdictions returns every jurisdiction under the active rule set.
func (h *Handler) ListJurisdictions(w http.ResponseWriter, r *http.Request) {
	rs := h.ActiveRuleSet()
	rules := rs.Rules()
	dtos := make([]JurisdictionDTO, len(rules))
	for i, rule := range rules {
		dtos[i] = toJurisdictionDTO(rule)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetJurisdiction returns one jurisdiction.
func (h *Handler) GetJurisdiction(w http.ResponseWriter, r *http.Request) {
	rule, ok := h.lookupRule(w, h.ActiveRuleSet(), chi.URLParam(r, "code"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toJurisdictionDTO(rule))
}

// GetLimits returns the income and asset limits for a household size.
// GET /api/jurisdictions/{code}/limits?household_size=N
func (h *Handler) GetLimits(w http.ResponseWriter, r *http.Request) {
	rs := h.ActiveRuleSet()
	rule, ok := h.lookupRule(w, rs, chi.URLParam(r, "code"))
	if !ok {
		return
	}

	size := 1
	if raw := r.URL.Query().Get("household_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, CodeInvalidInput,
				"household_size must be a whole number of at least 1", map[string]any{"field": "household_size", "value": raw})
			return
		}
		size = n
	}

	writeJSON(w, http.StatusOK, LimitsDTO{
		RuleSetID:     rs.ID,
		Jurisdiction:  string(rule.Jurisdiction),
		HouseholdSize: size,
		IncomeLimit:   rule.IncomeLimit(size).Float64(),
		AssetLimit:    rule.AssetLimit(size).Float64(),
	})
}

func (h *Handler) lookupRule(w http.ResponseWriter, rs *housing.RuleSet, code string) (housing.JurisdictionRule, bool) {
	j, err := housing.ParseJurisdiction(code)
	if err != nil {
		writeError(w, http.StatusNotFound, CodeNotFound, "Jurisdiction not found", code)
		return housing.JurisdictionRule{}, false
	}
	rule, err := rs.Rule(j)
	if err != nil {
		writeError(w, http.StatusNotFound, CodeNotFound, "Jurisdiction not found", code)
		return housing.JurisdictionRule{}, false
	}
	return rule, true
}

// =============================================================================
// ASSESSMENT HANDLERS
// =============================================================================

// CreateAssessment evaluates one household.
// POST /api/assessments[?format=text][&rule_set=ID]
func (h *Handler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		AssessmentsRejected.WithLabelValues(CodeInvalidInput).Inc()
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid request body", err.Error())
		return
	}

	violations, err := validateAssessment(body)
	if err != nil {
		AssessmentsRejected.WithLabelValues(CodeInvalidInput).Inc()
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid request body", err.Error())
		return
	}
	if len(violations) > 0 {
		AssessmentsRejected.WithLabelValues(CodeSchemaViolation).Inc()
		writeError(w, http.StatusBadRequest, CodeSchemaViolation, "Request does not match the assessment schema", violations)
		return
	}

	var req AssessmentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		AssessmentsRejected.WithLabelValues(CodeInvalidInput).Inc()
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid request body", err.Error())
		return
	}

	rs, err := h.ruleSet(r.URL.Query().Get("rule_set"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		AssessmentsRejected.WithLabelValues(CodeInvalidInput).Inc()
		writeDomainError(w, err)
		return
	}

	res, err := h.evaluate(rs, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	id := uuid.NewString()
	h.logger.Info("assessment evaluated",
		zap.String("assessment_id", id),
		zap.String("rule_set", rs.ID),
		zap.String("jurisdiction", string(res.Jurisdiction)),
		zap.Bool("eligible", res.Eligible),
		zap.Any("notes", res.Codes()),
	)

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Assessment-Id", id)
		w.WriteHeader(http.StatusOK)
		if err := render.Text(w, res); err != nil {
			h.logger.Warn("failed to write text assessment", zap.String("assessment_id", id), zap.Error(err))
		}
		return
	}

	writeJSON(w, http.StatusOK, toAssessmentDTO(id, rs.ID, res, h.now()))
}

// =============================================================================
// RULE SET HANDLERS
// =============================================================================

// ListRuleSets returns every stored rule set, newest year first.
func (h *Handler) ListRuleSets(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListRuleSets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "Failed to list rule sets", err.Error())
		return
	}

	h.mu.RLock()
	active := h.activeID
	h.mu.RUnlock()

	dtos := make([]RuleSetDTO, 0, len(records))
	for _, rec := range records {
		var cfg factory.RuleSetJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
			h.logger.Warn("stored rule set is not valid JSON", zap.String("rule_set", rec.ID), zap.Error(err))
			continue
		}
		dtos = append(dtos, toRuleSetDTO(rec, cfg, rec.ID == active))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRuleSet returns one stored rule set.
func (h *Handler) GetRuleSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetRuleSet(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "Failed to get rule set", err.Error())
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, CodeNotFound, "Rule set not found", id)
		return
	}

	var cfg factory.RuleSetJSON
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "Stored rule set is corrupt", err.Error())
		return
	}

	h.mu.RLock()
	active := h.activeID == rec.ID
	h.mu.RUnlock()

	writeJSON(w, http.StatusOK, toRuleSetDTO(*rec, cfg, active))
}

// CreateRuleSet validates and stores a rule set, replacing any with the
// same ID. An empty ID is assigned a generated one.
func (h *Handler) CreateRuleSet(w http.ResponseWriter, r *http.Request) {
	var rj factory.RuleSetJSON
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&rj); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(rj.ID) == "" {
		rj.ID = "rs-" + uuid.NewString()
	}

	rs, err := h.RuleFactory.FromJSON(rj)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	cfg, err := h.RuleFactory.Marshal(rs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "Failed to encode rule set", err.Error())
		return
	}

	ctx := r.Context()
	if err := h.Store.SaveRuleSet(ctx, store.RuleSetRecord{
		ID: rs.ID, Name: rs.Name, Year: rs.Year, ConfigJSON: cfg,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "Failed to save rule set", err.Error())
		return
	}

	h.mu.Lock()
	h.ruleSets[rs.ID] = rs
	active := h.activeID == rs.ID
	h.mu.Unlock()

	RuleSetChanges.WithLabelValues("save").Inc()
	h.logger.Info("rule set saved", zap.String("rule_set", rs.ID), zap.Int("year", rs.Year))

	rec, err := h.Store.GetRuleSet(ctx, rs.ID)
	if err != nil || rec == nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "Failed to reload rule set", errString(err))
		return
	}
	writeJSON(w, http.StatusCreated, toRuleSetDTO(*rec, h.RuleFactory.ToJSON(rs), active))
}

// ActivateRuleSet makes a loaded rule set the default for assessments.
// POST /api/rulesets/{id}/activate
func (h *Handler) ActivateRuleSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Held across the store write: a delete must not slip in between the
	// lookup and the switch.
	h.mu.Lock()
	rs, ok := h.ruleSets[id]
	if !ok {
		h.mu.Unlock()
		writeDomainError(w, fmt.Errorf("%w: %s", generic.ErrRuleSetNotFound, id))
		return
	}
	if err := h.Store.SetActiveRuleSet(r.Context(), id); err != nil {
		h.mu.Unlock()
		writeError(w, http.StatusInternalServerError, CodeInternal, "Failed to activate rule set", err.Error())
		return
	}
	previous := h.activeID
	h.activeID = id
	h.mu.Unlock()

	RuleSetChanges.WithLabelValues("activate").Inc()
	h.logger.Info("rule set activated", zap.String("rule_set", id), zap.String("previous", previous))

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "activated",
		"id":       rs.ID,
		"previous": previous,
	})
}

// DeleteRuleSet removes a rule set. The active one cannot be deleted.
func (h *Handler) DeleteRuleSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	// Leave the cache under the same lock as the active check, before the
	// store is touched. Failures below put it back.
	h.mu.Lock()
	if id == h.activeID {
		h.mu.Unlock()
		writeError(w, http.StatusConflict, CodeConflict, "Cannot delete the active rule set", id)
		return
	}
	cached, wasCached := h.ruleSets[id]
	delete(h.ruleSets, id)
	h.mu.Unlock()

	restore := func() {
		if !wasCached {
			return
		}
		h.mu.Lock()
		if _, ok := h.ruleSets[id]; !ok {
			h.ruleSets[id] = cached
		}
		h.mu.Unlock()
	}

	rec, err := h.Store.GetRuleSet(ctx, id)
	if err != nil {
		restore()
		writeError(w, http.StatusInternalServerError, CodeInternal, "Failed to get rule set", err.Error())
		return
	}
	if rec == nil {
		restore()
		writeError(w, http.StatusNotFound, CodeNotFound, "Rule set not found", id)
		return
	}

	if err := h.Store.DeleteRuleSet(ctx, id); err != nil {
		restore()
		writeError(w, http.StatusInternalServerError, CodeInternal, "Failed to delete rule set", err.Error())
		return
	}

	RuleSetChanges.WithLabelValues("delete").Inc()
	h.logger.Info("rule set deleted", zap.String("rule_set", id))

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code, Details: details})
}

// writeDomainError maps housing and generic errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, CodeNotFound, "Rule set not found", err.Error())
	case generic.IsClientError(err):
		var inputErr *generic.InvalidInputError
		if errors.As(err, &inputErr) {
			writeError(w, http.StatusBadRequest, CodeInvalidInput, inputErr.Error(), map[string]any{
				"field":  inputErr.Field,
				"value":  inputErr.Value,
				"reason": inputErr.Reason,
			})
			return
		}
		writeError(w, http.StatusBadRequest, CodeInvalidInput, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, CodeInternal, "Internal error", err.Error())
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
