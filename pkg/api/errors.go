package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	apiErrs "github.com/bytecalc/gobytecalc/pkg/api/errors"
)

// ErrorHandler renders handler failures as JSON error responses. Failures
// with no API representation are logged and served as internal server
// errors.
type ErrorHandler struct {
	logger *zap.Logger
}

func NewErrorHandler(logger *zap.Logger) ErrorHandler {
	return ErrorHandler{logger: logger}
}

func (eh *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	apiError := apiErrs.ApiError(nil)
	if errors.As(err, &apiError) {
		eh.sendApiErrJSON(w, r, apiError)
		return
	}
	eh.logger.Error("InternalServerError",
		zap.String("proto", r.Proto),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("remote_addr", r.RemoteAddr),
		zap.Error(err),
	)
	eh.sendApiErrJSON(w, r, apiErrs.NewUnknownError(err))
}

func (eh *ErrorHandler) sendApiErrJSON(w http.ResponseWriter, r *http.Request, apiErr apiErrs.ApiError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.GetHttpCode())
	if encodeErr := json.NewEncoder(w).Encode(apiErr); encodeErr != nil {
		eh.logger.Error("Failed to marshal API Error to JSON",
			zap.String("proto", r.Proto),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(encodeErr),
			zap.NamedError("api_error", apiErr),
		)
		// unreachable for the error types above, so treat it as a bug
		panic(errors.Errorf("BUG, CREATE REPORT: failed to marshal API Error to JSON: %s", encodeErr.Error()))
	}
}
