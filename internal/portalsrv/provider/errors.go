package provider

import (
	"net/http"

	"github.com/crestview/facilops/internal/common/apperrors"
)

var (
	ErrProvider     apperrors.Error = apperrors.New("scheduling provider error").SetStatusCode(http.StatusBadGateway)
	ErrAuth         apperrors.Error = ErrProvider.New("provider authentication failed").SetStatusCode(http.StatusBadGateway)
	ErrUnauthorized apperrors.Error = ErrProvider.New("provider rejected token")
	ErrBadResponse  apperrors.Error = ErrProvider.New("unexpected provider response")
)
