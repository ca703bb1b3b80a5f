package apis

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crestview/facilops/internal/common/httpx"
	"github.com/crestview/facilops/internal/portalsrv/db/models"
)

func (h *handler) listResources(r *http.Request) (*httpx.Response, error) {
	resources, err := h.store.ListResources(r.Context())
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: resources}, nil
}

func (h *handler) getResource(r *http.Request) (*httpx.Response, error) {
	resourceID, err := strconv.ParseInt(chi.URLParam(r, "resourceID"), 10, 64)
	if err != nil {
		return nil, httpx.ErrInvalidRequest("invalid resource ID")
	}
	resource, gerr := h.store.GetResource(r.Context(), resourceID)
	if gerr != nil {
		return nil, gerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: resource}, nil
}

type resourceRequest struct {
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code,omitempty"`
	Category string `json:"category,omitempty"`
	Capacity *int   `json:"capacity,omitempty"`
}

func (h *handler) createResource(r *http.Request) (*httpx.Response, error) {
	var req resourceRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, httpx.ErrInvalidRequest(err.Error())
	}
	resource := &models.Resource{
		Name:     req.Name,
		Code:     req.Code,
		Category: req.Category,
		Capacity: req.Capacity,
	}
	if err := h.store.CreateResource(r.Context(), resource); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusCreated, Response: resource}, nil
}

func (h *handler) listAliases(r *http.Request) (*httpx.Response, error) {
	resourceID, err := strconv.ParseInt(chi.URLParam(r, "resourceID"), 10, 64)
	if err != nil {
		return nil, httpx.ErrInvalidRequest("invalid resource ID")
	}
	aliases, aerr := h.store.ListAliases(r.Context(), resourceID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: aliases}, nil
}

type aliasRequest struct {
	ResourceID int64  `json:"resourceId" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=foreign_id name code"`
	Value      string `json:"value" validate:"required"`
}

func (h *handler) upsertAlias(r *http.Request) (*httpx.Response, error) {
	var req aliasRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, httpx.ErrInvalidRequest(err.Error())
	}
	alias := &models.ResourceAlias{
		ResourceID: req.ResourceID,
		Kind:       models.AliasKind(req.Kind),
		Value:      req.Value,
	}
	if err := h.store.UpsertAlias(r.Context(), alias); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusCreated, Response: alias}, nil
}

func (h *handler) deleteAlias(r *http.Request) (*httpx.Response, error) {
	kind := r.URL.Query().Get("kind")
	value := r.URL.Query().Get("value")
	if kind == "" || value == "" {
		return nil, httpx.ErrInvalidRequest("kind and value query parameters are required")
	}
	if err := h.store.DeleteAlias(r.Context(), models.AliasKind(kind), value); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: map[string]string{"status": "deleted"}}, nil
}
