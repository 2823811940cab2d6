package handlers

import (
	"net/http"

	"topocanvas/pkg/common"
	"topocanvas/pkg/errors"
)

// writeError maps application errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.IsConflict(err):
		status = http.StatusConflict
	}

	code := appErr.Code
	if code == "" {
		code = string(appErr.Type)
	}
	common.RespondError(w, status, code, appErr.Message)
}
