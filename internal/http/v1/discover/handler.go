// Package discover exposes partner search over the profile store.
package discover

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/labstack/echo/v5"

	applog "github.com/lingopeer/lingopeer-api/internal/platform/logging"
	"github.com/lingopeer/lingopeer-api/internal/platform/pagination"
	"github.com/lingopeer/lingopeer-api/internal/platform/respond"
	profilesvc "github.com/lingopeer/lingopeer-api/internal/service/profile"
)

const (
	cursorType       = "partner"
	recommendedCount = 5
)

// Register wires partner search routes into the provided group.
// The group is expected to have auth middleware applied.
func Register(g *echo.Group, svc profilesvc.Service) {
	g.GET("/partners", listHandler(svc))
	g.GET("/partners/recommended", recommendedHandler(svc))
}

// listHandler godoc
//
//	@Summary		List practice partners
//	@Description	Returns a paginated list of profiles with optional language and level filtering
//	@Tags			discover
//	@Produce		json,application/cbor
//	@Param			cursor		query		string	false	"Pagination cursor"
//	@Param			limit		query		int		false	"Partners per page"	minimum(1)	maximum(100)
//	@Param			language	query		string	false	"Filter by target language, case-insensitive substring"
//	@Param			level		query		string	false	"Filter by level"	Enums(beginner, intermediate, advanced)
//	@Success		200			{object}	ListData
//	@Failure		400			{object}	respond.ErrorBody
//	@Failure		401			{object}	respond.ErrorBody
//	@Failure		500			{object}	respond.ErrorBody
//	@Header			200			{string}	Link	"RFC 8288 pagination links"
//	@Security		BearerAuth
//	@Router			/partners [get]
func listHandler(svc profilesvc.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		var input ListInput
		if err := c.Bind(&input); err != nil {
			return err
		}
		if err := c.Validate(&input); err != nil {
			return err
		}

		limit := input.Limit
		if limit == 0 {
			limit = pagination.DefaultLimit
		}

		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return respond.Error400("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != cursorType {
			return respond.Error400("cursor type mismatch")
		}

		ctx := c.Request().Context()
		partners, err := loadPartners(ctx, svc, input.Language, input.Level)
		if err != nil {
			return err
		}

		if cursor.Value != "" && findPartnerIndex(partners, cursor.Value) == -1 {
			return respond.Error400("cursor references unknown profile")
		}

		query := url.Values{}
		if input.Language != "" {
			query.Set("language", input.Language)
		}
		if input.Level != "" {
			query.Set("level", input.Level)
		}

		result := pagination.Paginate(
			partners,
			cursor,
			limit,
			cursorType,
			func(p Partner) string { return p.UserID },
			"/v1/partners",
			query,
		)

		if result.LinkHeader != "" {
			c.Response().Header().Set("Link", result.LinkHeader)
		}
		return respond.Negotiate(c, http.StatusOK, ListData{
			Partners: result.Items,
			Total:    result.Total,
		})
	}
}

// recommendedHandler godoc
//
//	@Summary		Recommended partners
//	@Description	Returns a short list of suggested practice partners
//	@Tags			discover
//	@Produce		json,application/cbor
//	@Success		200	{object}	ListData
//	@Failure		401	{object}	respond.ErrorBody
//	@Failure		500	{object}	respond.ErrorBody
//	@Security		BearerAuth
//	@Router			/partners/recommended [get]
func recommendedHandler(svc profilesvc.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		ctx := c.Request().Context()
		partners, err := loadPartners(ctx, svc, "", "")
		if err != nil {
			return err
		}

		if len(partners) > recommendedCount {
			partners = partners[:recommendedCount]
		}
		return respond.Negotiate(c, http.StatusOK, ListData{
			Partners: partners,
			Total:    len(partners),
		})
	}
}

func loadPartners(ctx context.Context, svc profilesvc.Service, language, level string) ([]Partner, error) {
	profiles, err := svc.List(ctx)
	if err != nil {
		applog.LogError(ctx, "partner list backend error", err)
		return nil, respond.Error500("Backend error").
			WithDetails(map[string]any{"backend": err.Error()})
	}

	partners := make([]Partner, 0, len(profiles))
	for _, p := range profiles {
		if level != "" && string(p.Level) != level {
			continue
		}
		if language != "" && !learnsLanguage(p, language) {
			continue
		}
		partners = append(partners, toPartner(p))
	}
	return partners, nil
}

// learnsLanguage matches a target language by case-insensitive substring,
// so "ger" finds learners of "German".
func learnsLanguage(p *profilesvc.Profile, language string) bool {
	needle := strings.ToLower(strings.TrimSpace(language))
	return slices.ContainsFunc(p.TargetLanguages, func(l string) bool {
		return strings.Contains(strings.ToLower(l), needle)
	})
}

func findPartnerIndex(partners []Partner, id string) int {
	return slices.IndexFunc(partners, func(p Partner) bool {
		return p.UserID == id
	})
}
