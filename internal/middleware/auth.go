package middleware

import (
	"context"
	"strings"

	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/pkg/authenticator"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/router"
	"github.com/athlonhq/backend/pkg/xcontext"
)

// ParseAccessToken extracts the user identity from the bearer token (or
// the access token cookie) and stores it on the context. An absent token
// is not an error; Authenticate rejects later if the route requires one.
func ParseAccessToken(engine authenticator.TokenEngine[model.AccessTokenClaims]) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := ""
		if header := xcontext.HTTPRequest(ctx).Header.Get("Authorization"); header != "" {
			token = strings.TrimPrefix(header, "Bearer ")
		} else {
			cookie, err := xcontext.HTTPRequest(ctx).Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
			if err == nil {
				token = cookie.Value
			}
		}

		if token == "" {
			return ctx, nil
		}

		claims, err := engine.Verify(token)
		if err != nil {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, claims.ID), nil
	}
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}
