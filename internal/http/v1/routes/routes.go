// Package routes wires the v1 API surface.
package routes

import (
	"github.com/labstack/echo/v5"

	"github.com/lingopeer/lingopeer-api/internal/http/v1/chats"
	"github.com/lingopeer/lingopeer-api/internal/http/v1/discover"
	"github.com/lingopeer/lingopeer-api/internal/http/v1/profile"
	"github.com/lingopeer/lingopeer-api/internal/platform/auth"
	chatsvc "github.com/lingopeer/lingopeer-api/internal/service/chat"
	profilesvc "github.com/lingopeer/lingopeer-api/internal/service/profile"
)

// Register wires all v1 routes into the provided group. Every route
// requires a verified bearer token.
func Register(v1 *echo.Group, verifier auth.Verifier, profiles profilesvc.Service, conversations chatsvc.Service) {
	protected := v1.Group("", auth.Middleware(verifier))
	profile.Register(protected, profiles)
	discover.Register(protected, profiles)
	chats.Register(protected, conversations)
}
