package handlers

import (
	"errors"
	"net/http"

	"ugc-ads-backend/internal/models"
	"ugc-ads-backend/internal/provider"
)

// providerErrorResponse maps the provider error taxonomy onto HTTP statuses:
// missing credential 503, provider-reported failure 502, transport failure
// 502, everything else 500.
func providerErrorResponse(context string, err error) (int, models.ErrorResponse) {
	resp := models.ErrorResponse{
		Error:   context,
		Message: err.Error(),
	}

	switch {
	case errors.Is(err, provider.ErrMissingCredential):
		return http.StatusServiceUnavailable, resp
	case errors.Is(err, provider.ErrEmptyResponse),
		errors.Is(err, provider.ErrUnsupportedCapability):
		return http.StatusBadGateway, resp
	}

	var provErr *provider.ProviderError
	if errors.As(err, &provErr) {
		return http.StatusBadGateway, resp
	}
	var transportErr *provider.TransportError
	if errors.As(err, &transportErr) {
		return http.StatusBadGateway, resp
	}
	var malformedErr *provider.MalformedResponseError
	if errors.As(err, &malformedErr) {
		return http.StatusBadGateway, resp
	}

	return http.StatusInternalServerError, resp
}
