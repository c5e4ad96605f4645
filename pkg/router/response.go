package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func handleResponse() CloserFunc {
	return func(ctx context.Context) {
		if err := xcontext.Error(ctx); err != nil {
			writeError(ctx, err)
			return
		}

		if resp := xcontext.Response(ctx); resp != nil {
			if err := WriteJson(xcontext.HTTPWriter(ctx), newResponse(resp)); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
			}
		}
	}
}

func writeError(ctx context.Context, err error) {
	if werr := WriteJson(xcontext.HTTPWriter(ctx), newErrorResponse(err)); werr != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", werr)
	}
}

func WriteJson(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
