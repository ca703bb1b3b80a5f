package apis

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/httpx"
	"github.com/crestview/facilops/internal/portalsrv/availability"
)

var validate = validator.New()

func (h *handler) checkAvailability(r *http.Request) (*httpx.Response, error) {
	var req availability.Request
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Msg("availability request failed validation")
		return nil, httpx.ErrInvalidRequest(err.Error())
	}
	result, err := h.engine.CheckAvailability(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   result,
	}, nil
}
