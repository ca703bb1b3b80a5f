package apis

import (
	"net/http"
	"time"

	"github.com/crestview/facilops/internal/common/httpx"
	"github.com/crestview/facilops/internal/portalsrv/availability"
	"github.com/crestview/facilops/internal/portalsrv/db/models"
)

type eventRequest struct {
	Title      string `json:"title" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	AllDay     bool   `json:"allDay,omitempty"`
	ResourceID *int64 `json:"resourceId,omitempty"`
	// Location is the free-text fallback for events not linked to a
	// catalog resource.
	Location string `json:"location,omitempty"`
}

func (h *handler) createEvent(r *http.Request) (*httpx.Response, error) {
	var req eventRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, httpx.ErrInvalidRequest(err.Error())
	}
	date, _ := time.Parse("2006-01-02", req.Date)
	event := &models.Event{
		Title:      req.Title,
		Date:       date,
		AllDay:     req.AllDay,
		ResourceID: req.ResourceID,
		Location:   req.Location,
	}
	if !req.AllDay {
		start, ok := availability.ParseClock(req.StartTime)
		if !ok {
			return nil, httpx.ErrInvalidRequest("start time is missing or unparsable")
		}
		end, ok := availability.ParseClock(req.EndTime)
		if !ok {
			return nil, httpx.ErrInvalidRequest("end time is missing or unparsable")
		}
		if start >= end {
			return nil, httpx.ErrInvalidRequest("start time must precede end time")
		}
		event.StartMinute = &start
		event.EndMinute = &end
	}
	if err := h.store.CreateEvent(r.Context(), event); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusCreated, Response: event}, nil
}
