package routes

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// StorageRoutes serves files written by the local storage backend.
type StorageRoutes struct {
	prefix string
	dir    string
}

func NewStorageRoutes(prefix, dir string) *StorageRoutes {
	prefix = "/" + strings.Trim(strings.TrimSpace(prefix), "/")
	return &StorageRoutes{prefix: prefix, dir: dir}
}

func (r *StorageRoutes) RegisterRoutes(s *echo.Echo) {
	s.Static(r.prefix, r.dir)
}
