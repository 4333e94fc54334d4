package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/event"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// SportsService is the slice of the aggregator the HTTP surface needs.
type SportsService interface {
	Catalog() []usecase.SportInfo
	FetchSchedule(ctx context.Context, sport string, useCache bool) (event.ScheduleResult, error)
	FetchUpcomingBoxing(ctx context.Context, useCache bool) (event.ScheduleResult, error)
	ComputeDCI(ctx context.Context, sport string, one, two confidence.Competitor, mc confidence.MatchupContext) (confidence.Matchup, error)
	SyncAll(ctx context.Context) (event.SyncReport, error)
}

type Handler struct {
	sports    SportsService
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(sports SportsService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		sports:    sports,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSports")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"sports": h.sports.Catalog()})
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedule")
	defer span.End()

	useCache, err := parseUseCache(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.sports.FetchSchedule(ctx, r.PathValue("sport"), useCache)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GetUpcomingBoxing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUpcomingBoxing")
	defer span.End()

	useCache, err := parseUseCache(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.sports.FetchUpcomingBoxing(ctx, useCache)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

type competitorRequest struct {
	Name  string             `json:"name" validate:"required,max=120"`
	Stats map[string]float64 `json:"stats"`
}

type matchupContextRequest struct {
	Home    string `json:"home" validate:"omitempty,oneof=one two"`
	Surface string `json:"surface" validate:"omitempty,max=32"`
}

type computeDCIRequest struct {
	CompetitorOne competitorRequest     `json:"competitor_one"`
	CompetitorTwo competitorRequest     `json:"competitor_two"`
	Context       matchupContextRequest `json:"context"`
}

func (h *Handler) ComputeDCI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComputeDCI")
	defer span.End()

	var req computeDCIRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchup, err := h.sports.ComputeDCI(ctx, r.PathValue("sport"),
		confidence.Competitor{Name: strings.TrimSpace(req.CompetitorOne.Name), Stats: req.CompetitorOne.Stats},
		confidence.Competitor{Name: strings.TrimSpace(req.CompetitorTwo.Name), Stats: req.CompetitorTwo.Stats},
		confidence.MatchupContext{Home: confidence.ParseSide(req.Context.Home), Surface: req.Context.Surface},
	)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchup)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseUseCache(r *http.Request) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("use_cache"))
	if raw == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: use_cache must be a boolean", usecase.ErrInvalidInput)
	}
	return v, nil
}

// decodeJSONBody rejects unknown fields and oversized bodies. An empty body is an error.
func decodeJSONBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body too large", usecase.ErrInvalidInput)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}

	decoder := sonic.ConfigStd.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
