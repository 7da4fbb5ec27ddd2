package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/data/dto"
	"github.com/avelichko/kritika/internal/access"
	"github.com/avelichko/kritika/internal/validator"
	"github.com/avelichko/kritika/service"
)

// profileAlias is the reserved username addressing the authenticated user's
// own profile. It shares the /v1/users/:username route because httprouter
// rejects a static segment alongside a wildcard.
const profileAlias = "me"

func (h *Handler) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.CreateUser(requestBody.Username, requestBody.Email, requestBody.FirstName, requestBody.LastName, requestBody.Bio, data.Role(requestBody.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/users/%s", user.Username))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"user": user}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readSlugParam(r, "username")
	principal := h.contextGetUser(r)
	if username == profileAlias {
		err := h.encodeJSON(w, http.StatusOK, envelope{"user": principal}, nil)
		if err != nil {
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if !access.Allowed(r.Method, principal, access.UserAdmin, 0) {
		h.notPermittedResponse(w, r)
		return
	}
	user, err := h.service.GetUser(username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
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

func (h *Handler) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readSlugParam(r, "username")
	principal := h.contextGetUser(r)
	if username == profileAlias {
		h.updateProfile(w, r, principal)
		return
	}
	if !access.Allowed(r.Method, principal, access.UserAdmin, 0) {
		h.notPermittedResponse(w, r)
		return
	}
	var requestBody dto.UpdateUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	var role *data.Role
	if requestBody.Role != nil {
		value := data.Role(*requestBody.Role)
		role = &value
	}
	user, err := h.service.UpdateUser(username, requestBody.Email, requestBody.FirstName, requestBody.LastName, requestBody.Bio, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
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

// updateProfile handles PATCH /v1/users/me. The request body has no role
// field: a user cannot change their own role.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request, principal *data.User) {
	var requestBody dto.UpdateProfileRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.UpdateProfile(principal, requestBody.Email, requestBody.FirstName, requestBody.LastName, requestBody.Bio)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
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

func (h *Handler) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readSlugParam(r, "username")
	if username == profileAlias {
		h.methodNotAllowed(w, r)
		return
	}
	principal := h.contextGetUser(r)
	if !access.Allowed(r.Method, principal, access.UserAdmin, 0) {
		h.notPermittedResponse(w, r)
		return
	}
	err := h.service.DeleteUser(username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "user account successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListUsers
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Search = h.readString(qs, "search", "")
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "username")
	qsInput.Filters.SortSafelist = []string{"id", "username", "-id", "-username"}
	users, metadata, err := h.service.ListUsers(qsInput.Search, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"users": users, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
