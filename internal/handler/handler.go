package handler

import (
	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"load-simulation/internal/engine"
	"load-simulation/internal/jsonpatch"
	"load-simulation/internal/model"
	"load-simulation/internal/requestfile"
	"load-simulation/internal/scenario"
)

const (
	codeInvalidBody = "INVALID_BODY"
	codeNotFound    = "NOT_FOUND"
	codeBadMethod   = "METHOD_NOT_ALLOWED"
	codeInternal    = "INTERNAL_ERROR"
)

type Handler struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

type validateResponse struct {
	ScenarioType scenario.Type `json:"scenarioType"`
}

type normalizeResponse struct {
	Scenario json.RawMessage `json:"scenario"`
	Patch    []jsonpatch.Op  `json:"patch"`
}

// Handle routes every request of the service.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	var route func(*fasthttp.RequestCtx)
	switch string(ctx.Path()) {
	case "/scenarios/validate":
		route = h.validate
	case "/scenarios/normalize":
		route = h.normalize
	case "/requests/plan":
		route = h.plan
	default:
		h.writeError(ctx, fasthttp.StatusNotFound, codeNotFound, "No route for "+string(ctx.Path()))
		return
	}

	if !ctx.IsPost() {
		ctx.Response.Header.Set(fasthttp.HeaderAllow, fasthttp.MethodPost)
		h.writeError(ctx, fasthttp.StatusMethodNotAllowed, codeBadMethod, "Method not allowed")
		return
	}
	route(ctx)
}

func (h *Handler) validate(ctx *fasthttp.RequestCtx) {
	s, err := scenario.FromJSON(ctx.PostBody())
	if err != nil {
		h.writeScenarioError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, validateResponse{ScenarioType: s.ScenarioType()})
}

func (h *Handler) normalize(ctx *fasthttp.RequestCtx) {
	body := ctx.PostBody()
	s, err := scenario.FromJSON(body)
	if err != nil {
		h.writeScenarioError(ctx, err)
		return
	}

	canonical, err := scenario.ToJSON(s)
	if err != nil {
		h.logger.Error("encoding canonical scenario", zap.Stringer("scenario", s.ScenarioType()), zap.Error(err))
		h.writeError(ctx, fasthttp.StatusInternalServerError, codeInternal, "Failed to encode scenario")
		return
	}

	patch, err := jsonpatch.DiffDocuments(body, canonical)
	if err != nil {
		h.logger.Error("diffing canonical scenario", zap.Error(err))
		h.writeError(ctx, fasthttp.StatusInternalServerError, codeInternal, "Failed to diff scenario")
		return
	}

	h.writeJSON(ctx, fasthttp.StatusOK, normalizeResponse{Scenario: canonical, Patch: patch})
}

func (h *Handler) plan(ctx *fasthttp.RequestCtx) {
	req, err := requestfile.Parse(ctx.PostBody())
	if err != nil {
		h.writeError(ctx, fasthttp.StatusBadRequest, codeInvalidBody, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Calls) == 0 {
		h.writeError(ctx, fasthttp.StatusBadRequest, engine.CodeNoCalls, "At least one call is required")
		return
	}

	plan := engine.Process(req)
	h.logger.Debug("request planned",
		zap.Int("request_id", req.ID),
		zap.String("outcome", plan.PlanMetadata.PlanOutcome),
		zap.Int("transactions", plan.PlanResult.TotalTransactions))

	h.writeJSON(ctx, fasthttp.StatusOK, plan)
}

func (h *Handler) writeScenarioError(ctx *fasthttp.RequestCtx, err error) {
	code := scenario.ErrorCode(err)
	if code == "" {
		code = codeInvalidBody
	}
	h.writeError(ctx, fasthttp.StatusBadRequest, code, err.Error())
}

func (h *Handler) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("encoding response", zap.Error(err))
		status = fasthttp.StatusInternalServerError
		b, _ = json.Marshal(model.ErrorResponse{Status: status, Code: codeInternal, Message: "Failed to encode response"})
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, status int, code, message string) {
	h.logger.Debug("request rejected",
		zap.ByteString("path", ctx.Path()),
		zap.Int("status", status),
		zap.String("code", code),
		zap.String("message", message))
	h.writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}
