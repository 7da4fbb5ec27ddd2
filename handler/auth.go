package handler

import (
	"errors"
	"net/http"

	"github.com/avelichko/kritika/data/dto"
	"github.com/avelichko/kritika/service"
)

// SignUp godoc
// @Summary Request a confirmation code
// @Description This endpoint registers a user (or re-requests a code for an existing one) and emails a confirmation code
// @Tags auth
// @Accept  json
// @Produce json
// @Param body body dto.SignUpRequestBody true "JSON payload required to sign up"
// @Success 200 {object} data.User
// @Failure 400
// @Failure 409
// @Failure 422
// @Failure 500
// @Router /v1/auth/signup [post]
func (h *Handler) signUpHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.SignUpRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.SignUp(requestBody.Username, requestBody.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateToken godoc
// @Summary Exchange a confirmation code for a bearer token
// @Description This endpoint verifies a (username, confirmation code) pair and issues a signed bearer token
// @Tags auth
// @Accept  json
// @Produce json
// @Param body body dto.CreateTokenRequestBody true "JSON payload required to create a token"
// @Success 201
// @Failure 400
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /v1/auth/token [post]
func (h *Handler) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateTokenRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	token, err := h.service.CreateToken(requestBody.Username, requestBody.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrInvalidCode):
			h.invalidConfirmationCodeResponse(w, r)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"token": token}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
