package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aichabibi/EOLE/internal/core"
)

// filterDateLayout is the wire format for range bounds. The ingestion
// side speaks day-first French dates; the API sticks to ISO.
const filterDateLayout = "2006-01-02"

// parseFilters builds the filter criteria from query parameters:
// repeated "category" and "agency" values plus inclusive "from"/"to"
// bounds.
func parseFilters(query url.Values) (core.FilterCriteria, error) {
	c := core.FilterCriteria{
		Categories: cleanValues(query["category"]),
		Agencies:   cleanValues(query["agency"]),
	}

	var err error
	if c.From, err = parseBound(query.Get("from")); err != nil {
		return core.FilterCriteria{}, fmt.Errorf("invalid 'from' date: %w", err)
	}
	if c.To, err = parseBound(query.Get("to")); err != nil {
		return core.FilterCriteria{}, fmt.Errorf("invalid 'to' date: %w", err)
	}
	if !c.From.IsZero() && !c.To.IsZero() && c.To.Before(c.From) {
		return core.FilterCriteria{}, fmt.Errorf("date range is inverted: %s after %s",
			c.From.Format(filterDateLayout), c.To.Format(filterDateLayout))
	}
	return c, nil
}

func parseBound(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(filterDateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a %s date", v, filterDateLayout)
	}
	return t, nil
}

func cleanValues(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseTopN reads the optional "n" parameter, falling back to the
// configured default.
func parseTopN(query url.Values, fallback int) int {
	if v := strings.TrimSpace(query.Get("n")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
