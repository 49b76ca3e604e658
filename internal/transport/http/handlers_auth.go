package httptransport

import (
	"encoding/json"
	"net/http"

	"healthlink/internal/account"
	"healthlink/internal/platform/middleware"
	dErrors "healthlink/pkg/domain-errors"
	"healthlink/pkg/platform/httputil"
)

type signupRequest struct {
	NationalID       string `json:"nationalId"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Role             string `json:"role"`
	OrganizationName string `json:"organizationName"`
	OrganizationType string `json:"organizationType"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid signup request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.accounts.Signup(ctx, account.SignupRequest{
		NationalID:       req.NationalID,
		Email:            req.Email,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Role:             req.Role,
		OrganizationName: req.OrganizationName,
		OrganizationType: req.OrganizationType,
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "signup failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	if result.Simulated {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"warning": "database not configured, signup was simulated",
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid signin request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	claims, err := h.authn.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tok, err := h.tokens.Issue(claims)
	if err != nil {
		h.logger.ErrorContext(ctx, "token issuance failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "sign-in failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"token": tok,
		"user":  claims,
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "claims missing from context despite auth middleware",
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"user": claims,
	})
}
