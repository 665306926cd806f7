package handlers

import (
	"EvidenceKeeper/internal/middleware"
	"EvidenceKeeper/internal/service"
	"EvidenceKeeper/internal/storage"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// errorBody — тело ответа с ошибкой.
type errorBody struct {
	Error     string               `json:"error"`
	Details   []service.FieldError `json:"details,omitempty"`
	Possessor string               `json:"possessor,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError переводит ошибку сервиса в HTTP-статус. Детали внутренних ошибок
// остаются в логе.
func writeServiceError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	var verr *service.ValidationError
	var np *service.NotPossessorError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid input", Details: verr.Fields})
	case errors.As(err, &np):
		writeJSON(w, http.StatusForbidden, errorBody{Error: np.Error(), Possessor: np.Possessor})
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrBadPassword):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrLoginTaken),
		errors.Is(err, service.ErrAlreadyDisposed),
		errors.Is(err, service.ErrDisposalExists),
		errors.Is(err, service.ErrDuplicateToken),
		errors.Is(err, service.ErrDuplicateCaseNumber),
		errors.Is(err, storage.ErrExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Errorw(op+": service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON читает тело запроса; при ошибке сам отвечает 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, op string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warnw(op+": invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// requireUser достаёт id сотрудника из контекста; анонимному запросу отвечает 401.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
	}
	return uid, ok
}
