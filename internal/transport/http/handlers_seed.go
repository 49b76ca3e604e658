package httptransport

import (
	"net/http"

	"healthlink/internal/platform/middleware"
	dErrors "healthlink/pkg/domain-errors"
	"healthlink/pkg/platform/httputil"
)

func (h *Handler) handleSeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	if !h.development {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "disabled in production"))
		return
	}

	creds, err := h.seed.Run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "seed failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "seed failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"email":    creds.Email,
		"password": creds.Password,
	})
}
