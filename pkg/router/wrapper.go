package router

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"

	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	return func(w http.ResponseWriter, req *http.Request) {
		ctx := requestContext(r.baseCtx, w, req)

		ctx = func(ctx context.Context) context.Context {
			if req.Method != method {
				return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Not supported method %s", req.Method))
			}

			for _, m := range befores {
				newCtx, err := m(ctx)
				if err != nil {
					return xcontext.WithError(ctx, err)
				}

				// A nil context from a middleware means no change.
				if newCtx != nil {
					ctx = newCtx
				}
			}

			var request Request
			if err := bindRequest(req, method, &request); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			}

			resp, err := handler(ctx, &request)
			if err != nil {
				return xcontext.WithError(ctx, err)
			}

			return xcontext.WithResponse(ctx, resp)
		}(ctx)

		for _, m := range afters {
			newCtx, err := m(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				break
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		for _, closer := range closers {
			closer(ctx)
		}
	}
}

func bindRequest(req *http.Request, method string, obj any) error {
	if method == http.MethodGet {
		return bindQuery(req, obj)
	}

	if req.Body == nil {
		return nil
	}

	defer req.Body.Close()
	decoder := json.NewDecoder(req.Body)
	if err := decoder.Decode(obj); err != nil && err.Error() != "EOF" {
		return err
	}

	return nil
}

// bindQuery fills the request struct from URL query values, matching
// query names against json tags. Only flat string/number/bool fields
// are supported, which covers every GET request in this service.
func bindQuery(req *http.Request, obj any) error {
	v := reflect.ValueOf(obj).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("json")
		if name == "" || name == "-" {
			continue
		}

		queryVal := req.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(queryVal)

		case reflect.Int, reflect.Int32, reflect.Int64:
			val, err := strconv.ParseInt(queryVal, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(val)

		case reflect.Uint, reflect.Uint32, reflect.Uint64:
			val, err := strconv.ParseUint(queryVal, 10, 64)
			if err != nil {
				return err
			}
			field.SetUint(val)

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}
			field.SetBool(val)
		}
	}

	return nil
}
