package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"ptcmobile/services"
)

// errorStatus maps a service error to an HTTP status and a message for the
// user.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrIndexOutOfRange):
		return http.StatusBadRequest, "That vehicle line does not exist"
	case errors.Is(err, services.ErrDerivedField):
		return http.StatusBadRequest, "That field is calculated and cannot be edited"
	case errors.Is(err, services.ErrUnknownField):
		return http.StatusBadRequest, "Unknown invoice field"
	case errors.Is(err, services.ErrNotEditing):
		return http.StatusConflict, "The invoice is being previewed. Go back to edit it"
	case errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict, "That action is not available right now"
	case errors.Is(err, services.ErrInvalidModel):
		return http.StatusUnprocessableEntity, "Add at least one vehicle before generating the invoice"
	case errors.Is(err, services.ErrExternalRender):
		return http.StatusBadGateway, "Could not render the invoice. Please try again"
	case errors.Is(err, services.ErrWorkspaceNotFound):
		return http.StatusNotFound, "Your session has expired. Reload the page"
	}
	return http.StatusInternalServerError, "Something went wrong"
}

// fail logs err and answers with an error toast.
func (d *InvoiceDeps) fail(e *core.RequestEvent, op string, err error) error {
	status, msg := errorStatus(err)
	fields := []zap.Field{
		zap.String("workspace", GetWorkspaceID(e.Request)),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		d.Logger.Error(op+": failed", fields...)
	} else {
		d.Logger.Warn(op+": rejected", fields...)
	}
	return ErrorToast(e, status, msg)
}
