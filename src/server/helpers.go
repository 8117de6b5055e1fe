package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"stock-lens/src/helpers"
	"stock-lens/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------

func filterSnapshot(snapshot *models.MWatchlistSnapshot, symbols map[string]struct{}) *models.MWatchlistSnapshot {
	out := &models.MWatchlistSnapshot{
		Type:      snapshot.Type,
		Timestamp: snapshot.Timestamp,
		Items:     make([]models.MWatchItem, 0, len(snapshot.Items)),
	}
	for _, item := range snapshot.Items {
		if len(symbols) == 0 || contains(symbols, item.Code) || contains(symbols, item.Symbol) {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

func contains(set map[string]struct{}, item string) bool {
	_, ok := set[normalizeSymbol(item)]
	return ok
}

// -----------------------------------------------------------------------------

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// -----------------------------------------------------------------------------

// parseSymbols splits a comma separated query value, skipping blanks.
func parseSymbols(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// -----------------------------------------------------------------------------

func queryBool(c *gin.Context, key string, fallback bool) (bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return v, nil
}

// -----------------------------------------------------------------------------

// statusForError maps the error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, helpers.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, helpers.ErrNotFound), errors.Is(err, helpers.ErrEmptyResult):
		return http.StatusNotFound
	case errors.Is(err, helpers.ErrIncompleteData), errors.Is(err, helpers.ErrProviderFailure):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// -----------------------------------------------------------------------------

func describeError(err error) string {
	return helpers.Describe(err)
}
