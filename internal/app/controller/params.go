package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a numeric :id path parameter.
func parseIDParam(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", idStr)
	}
	return uint(id), nil
}

// parseUintQuery reads a numeric query parameter.
func parseUintQuery(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// parseIDList collects ids from the query string. Both repeated parameters
// (?id=1&id=2) and comma-separated values (?id=1,2) are accepted, and the
// two styles may be mixed.
func parseIDList(c *gin.Context) ([]uint, error) {
	var ids []uint
	for _, raw := range c.QueryArray("id") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid id %q", part)
			}
			ids = append(ids, uint(id))
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one id is required")
	}
	return ids, nil
}
