package api

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/runnerhq/runnerd/internal/metrics"
	"github.com/runnerhq/runnerd/internal/workdir"
	"github.com/runnerhq/runnerd/pkg/types"
)

// getFile handles GET /api/file?path=... and streams the file bytes as-is.
// A path escaping the working root answers 403, a missing or non-regular
// target 404; the two never blur together.
func (s *Server) getFile(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		metrics.FilesServedTotal.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "path query parameter is required",
		})
	}

	f, info, err := s.runner.Root().OpenFile(path)
	switch {
	case errors.Is(err, workdir.ErrOutsideRoot):
		metrics.FilesServedTotal.WithLabelValues("forbidden").Inc()
		return c.JSON(http.StatusForbidden, types.ErrorResponse{
			Error: "path resolves outside the working directory",
		})
	case errors.Is(err, fs.ErrNotExist):
		metrics.FilesServedTotal.WithLabelValues("not_found").Inc()
		return c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error: "no such file",
		})
	case errors.Is(err, workdir.ErrNotRegular):
		metrics.FilesServedTotal.WithLabelValues("not_found").Inc()
		return c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error: "not a regular file",
		})
	case err != nil:
		metrics.FilesServedTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: err.Error(),
		})
	}
	defer f.Close()

	metrics.FilesServedTotal.WithLabelValues("ok").Inc()
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(info.Size(), 10))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, f)
}
