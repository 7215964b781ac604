package httpapi

import (
	"errors"
	"net/http"

	"bizdash-be/internal/logger"
	"bizdash-be/internal/order"
	"bizdash-be/internal/pricing"
	"bizdash-be/internal/product"
	"bizdash-be/internal/user"
	"bizdash-be/internal/utils"

	"go.uber.org/zap"
)

var (
	errBadBody          = errors.New("invalid request body")
	errBadFilter        = errors.New("invalid filter")
	errMissingID        = errors.New("missing id")
	errInternal         = errors.New("internal server error")
	errMethodNotAllowed = errors.New("method not allowed")
)

// wireMessages holds response texts that differ from the error string.
var wireMessages = map[error]string{
	errMissingID: "Missing id",
}

func publicMessage(err error) string {
	for target, msg := range wireMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadBody), errors.Is(err, errBadFilter), errors.Is(err, errMissingID):
		return http.StatusBadRequest
	case product.IsValidationError(err), order.IsValidationError(err),
		errors.Is(err, pricing.ErrInvalidStatus), errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, user.ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, product.ErrProductNotFound), errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrNameExists), errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError maps service errors to a status code. Internal errors are
// logged and never echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("layer", "http"),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, errInternal.Error(), code)
		return
	}
	utils.WriteJSONError(w, publicMessage(err), code)
}

func methodNotAllowed(w http.ResponseWriter) {
	utils.WriteJSONError(w, errMethodNotAllowed.Error(), http.StatusMethodNotAllowed)
}
