package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"healthlink/internal/identity"
	"healthlink/internal/platform/middleware"
	dErrors "healthlink/pkg/domain-errors"
	"healthlink/pkg/platform/httputil"
)

type lookupRequest struct {
	NationalID string `json:"nationalId"`
}

func (h *Handler) handleIdentityLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.NationalID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "nationalId is required"))
		return
	}

	lookupCtx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	person, err := h.identity.Lookup(lookupCtx, req.NationalID)
	if err != nil {
		category := identity.GetCategory(err)
		h.logger.WarnContext(ctx, "identity lookup failed",
			"request_id", requestID,
			"provider", h.identity.ID(),
			"category", string(category),
			"error", err.Error(),
		)
		h.metrics.IncIdentityLookup(string(category))
		switch category {
		case identity.ErrorNotFound:
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "national identifier not found"))
		case identity.ErrorTimeout, identity.ErrorProviderOutage, identity.ErrorBadData:
			// Upstream registry failures surface as 502, never as our own 5xx.
			httputil.WriteJSON(w, http.StatusBadGateway, map[string]string{
				"error":             "bad_gateway",
				"error_description": "external lookup failed",
			})
		default:
			httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "lookup failed"))
		}
		return
	}

	h.metrics.IncIdentityLookup(h.identity.ID())
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"data": person,
	})
}
