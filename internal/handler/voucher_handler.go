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

type VoucherHandler struct {
	service *service.VoucherService
}

func NewVoucherHandler(service *service.VoucherService) *VoucherHandler {
	return &VoucherHandler{service: service}
}

func (h *VoucherHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	vouchers, err := h.service.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vouchers)
}

func (h *VoucherHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	vouchers, err := h.service.FindActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vouchers)
}

func (h *VoucherHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := voucherID(w, r)
	if !ok {
		return
	}

	voucher, found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, apierror.NotFound("Voucher not found"))
		return
	}

	writeJSON(w, http.StatusOK, voucher)
}

func (h *VoucherHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	voucher, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, voucher)
}

func (h *VoucherHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, ok := voucherID(w, r)
	if !ok {
		return
	}

	var payload model.UpdateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	voucher, found, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, apierror.NotFound("Voucher not found"))
		return
	}

	writeJSON(w, http.StatusOK, voucher)
}

func (h *VoucherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := voucherID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apierror.NotFound("Voucher not found"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func voucherID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apierror.BadRequest("Invalid voucher ID",
			apierror.FieldError{Field: "id", Message: "ID must be a valid number"}))
		return 0, false
	}
	return id, true
}
