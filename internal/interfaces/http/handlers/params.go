package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/pkg/utils"
)

const sortCreatedAtDesc = "created_at:desc"

func pathUUID(c *gin.Context, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}

// queryUUID parses an optional uuid filter; an empty value means no filter.
func queryUUID(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid " + key)
	}
	return &id, nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid " + key)
	}
	return &v, nil
}

func queryTime(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, domainerrors.BadRequest("Invalid " + key)
}

// withSet collects repeated or comma separated `with` values.
func withSet(c *gin.Context) map[string]bool {
	set := map[string]bool{}
	for _, raw := range c.QueryArray("with") {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
				set[p] = true
			}
		}
	}
	return set
}

// sortDesc reports whether any sort value asks for newest first.
func sortDesc(c *gin.Context) bool {
	for _, s := range c.QueryArray("sort") {
		if strings.EqualFold(strings.TrimSpace(s), sortCreatedAtDesc) {
			return true
		}
	}
	return false
}

func listParams(c *gin.Context) utils.ListParams {
	sort := c.Query("sort")
	if sort == "" {
		sort = sortCreatedAtDesc
	}
	return utils.ParseListParams(c.Query("skip"), c.Query("limit"), sort)
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return domainerrors.BadRequest(err.Error())
	}
	return nil
}
