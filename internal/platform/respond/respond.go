package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/labstack/echo/v5"

	"github.com/lingopeer/lingopeer-api/internal/platform/validate"
)

// mediaRange represents a parsed Accept header media range with quality value.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept parses an Accept header value into media ranges per RFC 9110.
func parseAccept(header string) []mediaRange {
	if header == "" {
		return nil
	}

	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		mr := mediaRange{q: 1.0}
		mediaType := part
		if before, after, ok := strings.Cut(part, ";"); ok {
			mediaType = strings.TrimSpace(before)
			for param := range strings.SplitSeq(after, ";") {
				param = strings.TrimSpace(param)
				if strings.HasPrefix(strings.ToLower(param), "q=") {
					if qval, err := strconv.ParseFloat(param[2:], 64); err == nil && qval >= 0 && qval <= 1 {
						mr.q = qval
					}
				}
			}
		}

		if before, after, ok := strings.Cut(mediaType, "/"); ok {
			mr.typ = strings.ToLower(strings.TrimSpace(before))
			mr.subtype = strings.ToLower(strings.TrimSpace(after))
		} else {
			mr.typ = strings.ToLower(strings.TrimSpace(mediaType))
			mr.subtype = "*"
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// selectFormat determines the preferred response format based on Accept header.
// Returns true for CBOR, false for JSON (default).
// Per RFC 9110: q-value is the primary ranking factor, specificity is tie-breaker.
func selectFormat(header string) bool {
	ranges := parseAccept(header)
	if len(ranges) == 0 {
		return false
	}

	var cborQ, jsonQ float64 = -1, -1
	cborSpecificity, jsonSpecificity := 0, 0

	for _, mr := range ranges {
		if mr.q == 0 {
			continue
		}

		specificity := 0
		matchesCBOR, matchesJSON := false, false

		switch {
		case mr.typ == "application" && mr.subtype == "cbor":
			matchesCBOR = true
			specificity = 3
		case mr.typ == "application" && mr.subtype == "json":
			matchesJSON = true
			specificity = 3
		case mr.typ == "application" && strings.HasSuffix(mr.subtype, "+cbor"):
			matchesCBOR = true
			specificity = 3
		case mr.typ == "application" && strings.HasSuffix(mr.subtype, "+json"):
			matchesJSON = true
			specificity = 3
		case mr.typ == "application" && mr.subtype == "*":
			matchesCBOR = true
			matchesJSON = true
			specificity = 2
		case mr.typ == "*" && mr.subtype == "*":
			matchesCBOR = true
			matchesJSON = true
			specificity = 1
		}

		if matchesCBOR && (specificity > cborSpecificity || (specificity == cborSpecificity && mr.q > cborQ)) {
			cborQ = mr.q
			cborSpecificity = specificity
		}
		if matchesJSON && (specificity > jsonSpecificity || (specificity == jsonSpecificity && mr.q > jsonQ)) {
			jsonQ = mr.q
			jsonSpecificity = specificity
		}
	}

	if cborQ <= 0 && jsonQ <= 0 {
		return false
	}

	if cborQ > jsonQ {
		return true
	}
	if jsonQ > cborQ {
		return false
	}
	return cborSpecificity > jsonSpecificity
}

// ensureVary adds values to the Vary header without duplicating existing entries.
func ensureVary(h http.Header, values ...string) {
	existing := make(map[string]struct{})
	for _, v := range h.Values("Vary") {
		for part := range strings.SplitSeq(v, ",") {
			existing[strings.TrimSpace(part)] = struct{}{}
		}
	}
	for _, v := range values {
		if _, ok := existing[v]; !ok {
			h.Add("Vary", v)
			existing[v] = struct{}{}
		}
	}
}

// writeError writes an error envelope honoring content negotiation.
func writeError(w http.ResponseWriter, r *http.Request, status int, body ErrorBody) {
	ensureVary(w.Header(), "Origin", "Accept")

	if selectFormat(r.Header.Get("Accept")) {
		w.Header().Set("Content-Type", "application/cbor")
		w.WriteHeader(status)
		_ = cbor.NewEncoder(w).Encode(body)
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(body)
	}
}

// Negotiate writes a response using content negotiation (JSON or CBOR).
func Negotiate(c *echo.Context, status int, data any) error {
	if selectFormat(c.Request().Header.Get("Accept")) {
		b, err := cbor.Marshal(data)
		if err != nil {
			return err
		}
		return c.Blob(status, "application/cbor", b)
	}
	return c.JSON(status, data)
}

// Recoverer returns Echo middleware that recovers from panics with an error envelope.
// Re-panics on http.ErrAbortHandler to preserve net/http abort semantics.
func Recoverer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			defer func() {
				if rec := recover(); rec != nil {
					if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
						panic(rec)
					}

					stack := debug.Stack()
					slog.ErrorContext(c.Request().Context(), "panic recovered",
						slog.Any("error", rec),
						slog.String("stack", string(stack)),
					)

					resp, unwrapErr := echo.UnwrapResponse(c.Response())
					if unwrapErr == nil && resp.Committed {
						return
					}

					writeError(c.Response(), c.Request(),
						http.StatusInternalServerError,
						ErrorBody{Error: "Internal Server Error"})
				}
			}()
			return next(c)
		}
	}
}

// NewHTTPErrorHandler returns an Echo HTTPErrorHandler that renders every error
// as the {"error", "details"} envelope. Validation failures map to 400 with a
// field-to-reason map in details.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(c *echo.Context, err error) {
		resp, unwrapErr := echo.UnwrapResponse(c.Response())
		if unwrapErr == nil && resp.Committed {
			return
		}

		status := http.StatusInternalServerError
		body := ErrorBody{Error: "Internal Server Error"}

		var ae *APIError
		var he *echo.HTTPError
		var ve *validate.ValidationError

		switch {
		case errors.As(err, &ae):
			status = ae.Status
			body = ae.Body()

		case errors.As(err, &ve):
			status = http.StatusBadRequest
			body = ErrorBody{Error: "Validation error", Details: fieldReasons(ve)}

		case errors.Is(err, echo.ErrNotFound):
			status = http.StatusNotFound
			body = ErrorBody{Error: "Resource not found"}

		case errors.Is(err, echo.ErrMethodNotAllowed):
			status = http.StatusMethodNotAllowed
			body = ErrorBody{Error: "Method not allowed"}

		case errors.As(err, &he):
			status = he.Code
			body = ErrorBody{Error: http.StatusText(he.Code)}
			if msg := he.Message; msg != "" {
				body.Error = msg
			}
		}

		writeError(c.Response(), c.Request(), status, body)
	}
}

// fieldReasons flattens a ValidationError into the details map of the envelope.
func fieldReasons(ve *validate.ValidationError) map[string]string {
	if len(ve.Fields) == 0 {
		return map[string]string{"body": ve.Message}
	}
	reasons := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		reasons[f.Field] = f.Message
	}
	return reasons
}
