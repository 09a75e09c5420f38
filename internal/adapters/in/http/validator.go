package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"lavka/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"gopkg.in/go-playground/validator.v9"
)

// CustomValidator plugs go-playground/validator into echo.
type CustomValidator struct {
	Validator *validator.Validate
}

// NewCustomValidator registers the time_window rule: "HH:MM-HH:MM" with start before end.
func NewCustomValidator() (*CustomValidator, error) {
	v := validator.New()
	if err := v.RegisterValidation("time_window", timeWindowRule); err != nil {
		return nil, err
	}
	return &CustomValidator{Validator: v}, nil
}

func (cv *CustomValidator) Validate(i any) error {
	return cv.Validator.Struct(i)
}

func timeWindowRule(fl validator.FieldLevel) bool {
	text, ok := fl.Field().Interface().(string)
	return ok && kernel.ValidateTimeWindow(text)
}

func badRequest(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
}

// bindStrict decodes a JSON body rejecting unknown fields and trailing data,
// then runs the struct validation.
func bindStrict(c echo.Context, dst any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return badRequest(err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return badRequest(errors.New("unexpected data after the JSON body"))
	}

	if err := c.Validate(dst); err != nil {
		return badRequest(err)
	}
	return nil
}

// allowQuery rejects query parameters outside of allowed.
func allowQuery(c echo.Context, allowed ...string) error {
	for name := range c.QueryParams() {
		if !slices.Contains(allowed, name) {
			return badRequest(fmt.Errorf("unknown query parameter %q", name))
		}
	}
	return nil
}

// queryInt reads a non-negative integer query parameter, def when absent.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		if c.QueryParams().Has(name) {
			return 0, badRequest(fmt.Errorf("%s is empty", name))
		}
		return def, nil
	}

	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 0 {
		return 0, badRequest(fmt.Errorf("%s must be a non-negative integer", name))
	}
	return int(n), nil
}

// queryDate reads a date as 2006-01-02 or RFC3339, def when absent.
func queryDate(c echo.Context, name string, def time.Time) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		if c.QueryParams().Has(name) {
			return time.Time{}, badRequest(fmt.Errorf("%s is empty", name))
		}
		return def, nil
	}

	return parseDate(name, raw)
}

func requiredQueryDate(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, badRequest(fmt.Errorf("%s is required", name))
	}

	return parseDate(name, raw)
}

func parseDate(name string, raw string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, badRequest(fmt.Errorf("%s must be YYYY-MM-DD or RFC3339", name))
}

func pathID(c echo.Context, name string) (kernel.ID, error) {
	return parseID(name, c.Param(name))
}

// queryID reads an optional id query parameter, nil when absent.
func queryID(c echo.Context, name string) (*kernel.ID, error) {
	if !c.QueryParams().Has(name) {
		return nil, nil
	}

	id, err := parseID(name, c.QueryParam(name))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseID(name string, raw string) (kernel.ID, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badRequest(fmt.Errorf("%s must be an integer", name))
	}

	id := kernel.ID(n)
	if err = id.Validate(); err != nil {
		return 0, badRequest(err)
	}
	return id, nil
}
