package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"isp-admin/internal/model"
	"isp-admin/internal/service"
	"isp-admin/pkg/apierror"
)

type PackageHandler struct {
	service *service.PackageService
}

func NewPackageHandler(service *service.PackageService) *PackageHandler {
	return &PackageHandler{service: service}
}

func (h *PackageHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, packages)
}

func (h *PackageHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.FindActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, packages)
}

func (h *PackageHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := packageID(w, r)
	if !ok {
		return
	}

	pkg, found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, apierror.NotFound("Package not found"))
		return
	}

	writeJSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	pkg, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pkg)
}

func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, ok := packageID(w, r)
	if !ok {
		return
	}

	var payload model.UpdatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	pkg, found, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, apierror.NotFound("Package not found"))
		return
	}

	writeJSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := packageID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apierror.NotFound("Package not found"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// packageID parses the id path parameter, rejecting non-numeric values with a
// 400 before any service call.
func packageID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apierror.BadRequest("Invalid package ID",
			apierror.FieldError{Field: "id", Message: "ID must be a valid number"}))
		return 0, false
	}
	return id, true
}
