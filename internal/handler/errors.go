package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/recruitflow/availability/internal/api"
	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/middleware"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: message}})
}

// requestError answers 422 for a request rejected before reaching the
// service layer (e.g. missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeErrorBody(w, http.StatusUnprocessableEntity, api.CodeValidation, message)
}

// serviceError maps a service error to its HTTP status. notFound is the
// message used for domain.ErrNotFound because the handler knows what was
// being looked up.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, api.CodeValidation, unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, api.CodeNotFound, notFound)
	case errors.Is(err, domain.ErrForbidden):
		writeErrorBody(w, http.StatusForbidden, api.CodeForbidden, unwrapMessage(err))
	case errors.Is(err, domain.ErrConflict):
		writeErrorBody(w, http.StatusConflict, api.CodeConflict, unwrapMessage(err))
	case errors.Is(err, domain.ErrUnauthenticated):
		writeErrorBody(w, http.StatusUnauthorized, api.CodeUnauthenticated, unwrapMessage(err))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeErrorBody(w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
	}
}

// sentinels are dropped from client-facing messages; the code already says it.
var sentinels = []error{
	domain.ErrValidation, domain.ErrForbidden, domain.ErrConflict, domain.ErrUnauthenticated,
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// Call-site prefixes such as "service.AvailabilityService.Submit" and the
// sentinel text are removed:
// "service.AvailabilityService.Submit: slot 2: validation error: slot overlaps an existing one"
// becomes "slot 2: slot overlaps an existing one".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	var kept []string
	for _, part := range strings.Split(err.Error(), ": ") {
		if isCallSite(part) || isSentinel(part) {
			continue
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return err.Error()
	}
	return strings.Join(kept, ": ")
}

// callSite matches wrap prefixes: a lowercase package followed by exported
// identifiers, as in "repo.SlotRepo.CreateBatch" or "availability.PolicyForZone".
var callSite = regexp.MustCompile(`^[a-z][a-z0-9]*(\.[A-Z][A-Za-z0-9]*)+$`)

func isCallSite(part string) bool {
	return callSite.MatchString(part)
}

func isSentinel(part string) bool {
	for _, e := range sentinels {
		if part == e.Error() {
			return true
		}
	}
	return false
}

// session returns the caller's session. The auth middleware guarantees one on
// every grouped route; a missing session is answered with 401.
func session(w http.ResponseWriter, r *http.Request) (domain.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeErrorBody(w, http.StatusUnauthorized, api.CodeUnauthenticated, "no session")
	}
	return sess, ok
}

// pathID binds the {id} path parameter as a UUID, answering 404 when it is
// malformed since no resource can carry such an ID.
func pathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeErrorBody(w, http.StatusNotFound, api.CodeNotFound, what+" not found")
		return uuid.UUID{}, false
	}
	return id, true
}

// decodeBody decodes a JSON body into dst, answering 413 or 422 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		requestError(w, "request body is required")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeErrorBody(w, http.StatusRequestEntityTooLarge, api.CodeValidation,
				fmt.Sprintf("request body exceeds %d bytes", tooBig.Limit))
			return false
		}
		requestError(w, "malformed request body: "+err.Error())
		return false
	}
	return true
}
