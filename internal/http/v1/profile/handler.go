// Package profile exposes the profile CRUD endpoints.
package profile

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/lingopeer/lingopeer-api/internal/platform/auth"
	applog "github.com/lingopeer/lingopeer-api/internal/platform/logging"
	"github.com/lingopeer/lingopeer-api/internal/platform/respond"
	"github.com/lingopeer/lingopeer-api/internal/platform/timeutil"
	"github.com/lingopeer/lingopeer-api/internal/platform/validate"
	profilesvc "github.com/lingopeer/lingopeer-api/internal/service/profile"
)

// Register wires profile routes into the provided group.
// The group is expected to have auth middleware applied.
func Register(g *echo.Group, svc profilesvc.Service) {
	g.POST("/profile", handleCreateProfile(svc))
	g.GET("/profile/:user_id", handleGetProfile(svc))
	g.PATCH("/profile/:user_id", handleUpdateProfile(svc))
	g.DELETE("/profile/:user_id", handleDeleteProfile(svc))
}

// handleCreateProfile godoc
//
//	@Summary		Create profile
//	@Description	Creates a new user profile with its target languages
//	@Tags			profile
//	@Accept			json
//	@Produce		json,application/cbor
//	@Param			body	body		CreateInput	true	"Profile creation request body"
//	@Success		201		{object}	Profile
//	@Failure		400		{object}	respond.ErrorBody
//	@Failure		401		{object}	respond.ErrorBody
//	@Failure		409		{object}	respond.ErrorBody
//	@Failure		500		{object}	respond.ErrorBody
//	@Header			201		{string}	Location	"URI of the created profile"
//	@Security		BearerAuth
//	@Router			/profile [post]
func handleCreateProfile(svc profilesvc.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		fields, err := readBodyFields(c, createKeys)
		if err != nil {
			return err
		}

		var input CreateInput
		if err := fields.Decode(&input); err != nil {
			return respond.Error400("Invalid request body")
		}
		// target_languages and bio are not caught by struct tags: the first
		// must be present (an empty array is valid, absence is not) and the
		// second may be an empty string but must exist.
		details := map[string]string{}
		if !fields.Has("target_languages") || fields.IsNull("target_languages") {
			details["target_languages"] = "target_languages must be an array of non-empty strings"
		}
		if !fields.Has("bio") || fields.IsNull("bio") {
			details["bio"] = "bio must be a string"
		}
		if len(details) > 0 {
			return respond.Error400("Validation error").WithDetails(details)
		}
		if err := c.Validate(&input); err != nil {
			return err
		}

		ctx := c.Request().Context()
		created, err := svc.Create(ctx, input.UserID, profilesvc.CreateParams{
			Email:           input.Email,
			FirstName:       input.FirstName,
			LastName:        input.LastName,
			Level:           profilesvc.Level(input.Level),
			TargetLanguages: input.TargetLanguages,
			NativeLanguage:  input.NativeLanguage,
			Bio:             input.Bio,
		})
		if err != nil {
			return mapServiceError(ctx, err)
		}

		applog.LogAuditEvent(ctx, "profile.create", actingUser(c), "profile", created.UserID, "success", nil)

		c.Response().Header().Set("Location", "/v1/profile/"+created.UserID)
		return respond.Negotiate(c, http.StatusCreated, toHTTPProfile(created))
	}
}

// handleGetProfile godoc
//
//	@Summary		Get profile
//	@Description	Returns the profile for the given user ID
//	@Tags			profile
//	@Produce		json,application/cbor
//	@Param			user_id	path		string	true	"User ID"
//	@Success		200		{object}	Profile
//	@Failure		401		{object}	respond.ErrorBody
//	@Failure		404		{object}	respond.ErrorBody
//	@Failure		500		{object}	respond.ErrorBody
//	@Security		BearerAuth
//	@Router			/profile/{user_id} [get]
func handleGetProfile(svc profilesvc.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		ctx := c.Request().Context()
		p, err := svc.Get(ctx, c.Param("user_id"))
		if err != nil {
			return mapServiceError(ctx, err)
		}

		return respond.Negotiate(c, http.StatusOK, toHTTPProfile(p))
	}
}

// handleUpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Partially updates the profile for the given user ID
//	@Tags			profile
//	@Accept			json
//	@Produce		json,application/cbor
//	@Param			user_id	path		string		true	"User ID"
//	@Param			body	body		UpdateInput	true	"Profile update request body"
//	@Success		200		{object}	Profile
//	@Failure		400		{object}	respond.ErrorBody
//	@Failure		401		{object}	respond.ErrorBody
//	@Failure		404		{object}	respond.ErrorBody
//	@Failure		500		{object}	respond.ErrorBody
//	@Security		BearerAuth
//	@Router			/profile/{user_id} [patch]
func handleUpdateProfile(svc profilesvc.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		fields, err := readBodyFields(c, updateKeys)
		if err != nil {
			return err
		}

		var input UpdateInput
		if err := fields.Decode(&input); err != nil {
			return respond.Error400("Invalid request body")
		}
		if details := nullPatchMembers(fields); len(details) > 0 {
			return respond.Error400("Validation error").WithDetails(details)
		}
		if err := c.Validate(&input); err != nil {
			return err
		}

		params := profilesvc.UpdateParams{
			Email:          input.Email,
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			NativeLanguage: input.NativeLanguage,
			Bio:            input.Bio,
		}
		if input.Level != nil {
			level := profilesvc.Level(*input.Level)
			params.Level = &level
		}
		if fields.Has("target_languages") {
			params.TargetLanguages = input.TargetLanguages
			if params.TargetLanguages == nil {
				params.TargetLanguages = []string{}
			}
		}
		if fields.IsNull("profile_picture_url") {
			params.ClearPicture = true
		} else if fields.Has("profile_picture_url") {
			params.PictureURL = input.PictureURL
		}

		if params.IsEmpty() {
			return respond.Error400("at least one updatable field is required")
		}

		ctx := c.Request().Context()
		updated, err := svc.Update(ctx, c.Param("user_id"), params)
		if err != nil {
			return mapServiceError(ctx, err)
		}

		applog.LogAuditEvent(ctx, "profile.update", actingUser(c), "profile", updated.UserID, "success", nil)

		return respond.Negotiate(c, http.StatusOK, toHTTPProfile(updated))
	}
}

// handleDeleteProfile godoc
//
//	@Summary		Delete profile
//	@Description	Deletes the profile for the given user ID
//	@Tags			profile
//	@Param			user_id	path	string	true	"User ID"
//	@Success		204
//	@Failure		401	{object}	respond.ErrorBody
//	@Failure		404	{object}	respond.ErrorBody
//	@Failure		500	{object}	respond.ErrorBody
//	@Security		BearerAuth
//	@Router			/profile/{user_id} [delete]
func handleDeleteProfile(svc profilesvc.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		ctx := c.Request().Context()
		userID := c.Param("user_id")
		if err := svc.Delete(ctx, userID); err != nil {
			return mapServiceError(ctx, err)
		}

		applog.LogAuditEvent(ctx, "profile.delete", actingUser(c), "profile", userID, "success", nil)

		return c.NoContent(http.StatusNoContent)
	}
}

// readBodyFields reads the request body as a JSON object and rejects any
// key outside the allow-list before field-level validation runs.
func readBodyFields(c *echo.Context, allowed []string) (validate.Fields, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, respond.Error400("Invalid request body")
	}

	fields, err := validate.ParseObject(body)
	if err != nil {
		return nil, respond.Error400("Request body must be a JSON object")
	}

	if unknown := fields.UnknownKeys(allowed...); len(unknown) > 0 {
		return nil, respond.Error400("Unknown fields in request body").
			WithDetails(map[string]any{"unknown_keys": unknown})
	}
	return fields, nil
}

// patchNullReasons are the field errors for an explicit null on patch.
// Only profile_picture_url assigns meaning to null (clearing the picture);
// every other present key must carry a usable value.
var patchNullReasons = map[string]string{
	"email":            "email must be a non-empty string",
	"first_name":       "first_name must be a non-empty string",
	"last_name":        "last_name must be a non-empty string",
	"level":            "level must be one of: beginner, intermediate, advanced",
	"target_languages": "target_languages must be an array of non-empty strings",
	"native_language":  "native_language must be a non-empty string",
	"bio":              "bio must be a string",
}

func nullPatchMembers(fields validate.Fields) map[string]string {
	var details map[string]string
	for key, reason := range patchNullReasons {
		if fields.IsNull(key) {
			if details == nil {
				details = map[string]string{}
			}
			details[key] = reason
		}
	}
	return details
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return respond.Error404("Profile not found")
	case errors.Is(err, profilesvc.ErrAlreadyExists):
		return respond.Error409("Profile already exists")
	default:
		applog.LogError(ctx, "profile backend error", err)
		return respond.Error500("Backend error").
			WithDetails(map[string]any{"backend": err.Error()})
	}
}

// actingUser returns the authenticated caller's UID for audit logging.
func actingUser(c *echo.Context) string {
	user, err := auth.UserFromEchoContext(c)
	if err != nil {
		return ""
	}
	return user.UID
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		UserID:          p.UserID,
		Email:           p.Email,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Level:           string(p.Level),
		TargetLanguages: p.TargetLanguages,
		NativeLanguage:  p.NativeLanguage,
		Bio:             p.Bio,
		PictureURL:      p.PictureURL,
		CreatedAt:       timeutil.Time{Time: p.CreatedAt},
		UpdatedAt:       timeutil.Time{Time: p.UpdatedAt},
	}
}
