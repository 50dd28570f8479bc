package api

import (
	"context"
	"errors"

	"MoverScan/internal/usecase"
	xhttp "MoverScan/pkg/http"
)

// toAppError maps usecase errors onto the API error envelope, or returns nil
// for errors that should surface as a plain 500. tf and strategy are the raw
// request values echoed back for unsupported input.
func toAppError(err error, tf, strategy string) *xhttp.AppError {
	var short *usecase.InsufficientDataError
	switch {
	case errors.As(err, &short):
		return xhttp.UnprocessableError("ERR_INSUFFICIENT_DATA", short.Error()).
			WithParam("count", short.Count).
			WithParam("required", short.Required).
			WithError(err)
	case errors.Is(err, usecase.ErrUnsupportedTimeframe):
		return xhttp.UnsupportedError("tf", tf).WithError(err)
	case errors.Is(err, usecase.ErrUnsupportedStrategy):
		return xhttp.UnsupportedError("strategy", strategy).WithError(err)
	case errors.Is(err, usecase.ErrSymbolRequired):
		return fieldError("symbol", err)
	case errors.Is(err, usecase.ErrNoSymbols):
		return fieldError("symbols", err)
	case errors.Is(err, usecase.ErrQueryRequired):
		return fieldError("q", err)
	case errors.Is(err, usecase.ErrBacktestFailed):
		return xhttp.BadGatewayError("backtest engine unavailable").WithError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return xhttp.InternalError("request timed out").WithError(err)
	default:
		return nil
	}
}

func fieldError(field string, err error) *xhttp.AppError {
	e := xhttp.BadRequestError(err.Error()).WithError(err)
	e.Field = field
	return e
}
