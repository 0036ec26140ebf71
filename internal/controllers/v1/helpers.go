package v1

import (
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// ledgerService returns the service for the current database connection.
func ledgerService() service.Service {
	return service.New(models.DB)
}

// baseURL returns the base URL of the API for links.
func baseURL(c *gin.Context) string {
	return c.GetString(string(models.DBContextURL))
}

// bindURI binds the ID in the URI. On failure, an error response
// has been written.
func bindURI(c *gin.Context) (uuid.UUID, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return uuid.Nil, false
	}

	return uri.ID.UUID, true
}

// optionalID converts a possibly unset ID to a pointer.
func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

// page returns the slice of items selected by offset and limit. A limit
// below zero returns all items after offset.
func page[T any](items []T, offset uint, limit int) []T {
	if int(offset) >= len(items) {
		return []T{}
	}

	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}

// listLimit returns the limit if it was set in the query, the default limit
// otherwise.
func listLimit(setFields []string, value int) int {
	if slices.Contains(setFields, "Limit") {
		return value
	}
	return defaultLimit
}
