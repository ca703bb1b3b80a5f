package availability

import (
	"net/http"

	"github.com/crestview/facilops/internal/common/apperrors"
)

var (
	ErrAvailability apperrors.Error = apperrors.New("availability query failed").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidQuery apperrors.Error = ErrAvailability.New("invalid availability query").SetStatusCode(http.StatusBadRequest)

	ErrMissingReference apperrors.Error = ErrInvalidQuery.New("resource reference is required")
	ErrBadDate          apperrors.Error = ErrInvalidQuery.New("date must be an ISO date (YYYY-MM-DD)")
	ErrBadStartTime     apperrors.Error = ErrInvalidQuery.New("start time is missing or unparsable")
	ErrBadEndTime       apperrors.Error = ErrInvalidQuery.New("end time is missing or unparsable")
	ErrInvertedInterval apperrors.Error = ErrInvalidQuery.New("start time must precede end time")
)
