package http

import (
	"net/http"

	"millflow/internal/adapters/out/authority"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Actor identification headers set by the authenticating reverse proxy.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorName = "X-Actor-Name"
)

// ActorMiddleware resolves the acting user from the request headers and
// attaches it to the request context. Requests without a valid actor are
// rejected before reaching any handler.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			rawID := ctx.Request().Header.Get(HeaderActorID)
			if rawID == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing " + HeaderActorID + " header",
				})
			}

			id, err := kernel.UUIDFromString(rawID)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "malformed " + HeaderActorID + " header",
				})
			}

			actor := ports.Actor{
				ID:   id,
				Name: ctx.Request().Header.Get(HeaderActorName),
			}

			request := ctx.Request()
			ctx.SetRequest(request.WithContext(authority.WithActor(request.Context(), actor)))
			return next(ctx)
		}
	}
}

// actorID extracts the acting user's ID from the request. ActorMiddleware
// has already validated the header.
func actorID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
}
