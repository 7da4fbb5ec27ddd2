package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avelichko/kritika/data/dto"
	"github.com/avelichko/kritika/internal/validator"
	"github.com/avelichko/kritika/service"
)

// CreateTitle godoc
// @Summary Create a new title
// @Description This endpoint adds a title (book, film, ...) to the catalog
// @Tags titles
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreateTitleRequestBody true "JSON payload required to create a title"
// @Success 201 {object} data.Title
// @Failure 400
// @Failure 422
// @Failure 500
// @Router /v1/titles [post]
func (h *Handler) createTitleHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateTitleRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	title, err := h.service.CreateTitle(requestBody.Name, requestBody.Year, requestBody.Description, requestBody.Category, requestBody.Genre)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/titles/%d", title.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"title": title}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowTitle godoc
// @Summary Show details of a title
// @Description This endpoint shows a title along with its derived rating
// @Tags titles
// @Accept  json
// @Produce json
// @Param titleId path int true "ID of title to show"
// @Success 200 {object} data.Title
// @Failure 404
// @Failure 500
// @Router /v1/titles/{titleId} [get]
func (h *Handler) showTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	title, err := h.service.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"title": title}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateTitle godoc
// @Summary Update a title
// @Description This endpoint partially updates a title; absent fields are left unchanged
// @Tags titles
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param titleId path int true "ID of title to update"
// @Param body body dto.UpdateTitleRequestBody true "JSON payload required to update a title"
// @Success 200 {object} data.Title
// @Failure 400
// @Failure 404
// @Failure 409
// @Failure 422
// @Failure 500
// @Router /v1/titles/{titleId} [patch]
func (h *Handler) updateTitleHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.UpdateTitleRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	title, err := h.service.UpdateTitle(titleID, requestBody.Name, requestBody.Year, requestBody.Description, requestBody.Category, requestBody.Genre)
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
	err = h.encodeJSON(w, http.StatusOK, envelope{"title": title}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteTitle godoc
// @Summary Delete a title
// @Description This endpoint deletes a title together with its reviews and their comments
// @Tags titles
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param titleId path int true "ID of title to delete"
// @Success 200
// @Failure 404
// @Failure 500
// @Router /v1/titles/{titleId} [delete]
func (h *Handler) deleteTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "title successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListTitles godoc
// @Summary List all titles
// @Description This endpoint lists titles, filterable by name, year, genre slug and category slug
// @Tags titles
// @Accept  json
// @Produce json
// @Param name query string false "Filter by name substring"
// @Param year query int false "Filter by year"
// @Param genre query string false "Filter by genre slug"
// @Param category query string false "Filter by category slug"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param page_size query int false "Query string param for pagination (max 100)"
// @Param sort query string false "Sort by ascending or descending order. Asc: id, name, year. Desc: -id, -name, -year"
// @Success 200 {array} data.Title
// @Failure 422
// @Failure 500
// @Router /v1/titles [get]
func (h *Handler) listTitlesHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListTitles
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Name = h.readString(qs, "name", "")
	qsInput.Year = int32(h.readInt(qs, "year", 0, v))
	qsInput.Genre = h.readString(qs, "genre", "")
	qsInput.Category = h.readString(qs, "category", "")
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "id")
	qsInput.Filters.SortSafelist = []string{"id", "name", "year", "-id", "-name", "-year"}
	titles, metadata, err := h.service.ListTitles(qsInput.Name, qsInput.Year, qsInput.Genre, qsInput.Category, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"titles": titles, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
