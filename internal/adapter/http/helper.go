package http

import (
	"errors"
	"strings"
	"time"

	"opsplatform-backend/internal/adapter/middleware"
	"opsplatform-backend/internal/domain/access"
	"opsplatform-backend/internal/domain/listing"
	"opsplatform-backend/internal/domain/workflow"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// actorOf returns the caller stored by the auth middleware. Without one the
// zero actor is returned, which holds no grants.
func actorOf(c echo.Context) access.Actor {
	a, _ := middleware.ActorFrom(c)
	return a
}

// parseDate accepts "" as the zero time.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// parseQuery reads the list filters shared by the finance list endpoints.
func parseQuery(c echo.Context) (listing.Query, error) {
	q := listing.Query{
		Status:    strings.TrimSpace(c.QueryParam("status")),
		Category:  strings.TrimSpace(c.QueryParam("category")),
		ProjectID: strings.TrimSpace(c.QueryParam("project_id")),
		Search:    c.QueryParam("q"),
	}
	var bad []string
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &q.From}, {"to", &q.To}} {
		d, err := parseDate(c.QueryParam(p.name))
		if err != nil {
			bad = append(bad, p.name+" must be a date formatted YYYY-MM-DD")
			continue
		}
		if !d.IsZero() {
			*p.dst = &d
		}
	}
	if q.To != nil {
		// inclusive upper bound
		end := q.To.Add(24*time.Hour - time.Nanosecond)
		q.To = &end
	}
	if s := c.QueryParam("sort"); s != "" {
		f, desc := listing.ParseSort(s)
		if f == "" {
			bad = append(bad, "sort must be one of date, amount, status, created")
		}
		q.SortBy, q.Desc = f, desc
		switch strings.ToLower(c.QueryParam("order")) {
		case "asc":
			q.Desc = false
		case "desc":
			q.Desc = true
		}
	}
	if len(bad) > 0 {
		return q, workflow.Check(bad)
	}
	return q, nil
}

var errMissingParam = errors.New("missing path param")

// pathID reads a required path parameter.
func pathID(c echo.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		return "", errMissingParam
	}
	return v, nil
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
