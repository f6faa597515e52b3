package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/runnerhq/runnerd/internal/metrics"
	"github.com/runnerhq/runnerd/internal/runner"
	"github.com/runnerhq/runnerd/internal/workdir"
	"github.com/runnerhq/runnerd/pkg/types"
)

// runCommand handles POST /api/run. The handler blocks until the child
// process exits; spawn failures still answer 200 with an error status in
// the body, since "the command could not start" is a valid run outcome.
func (s *Server) runCommand(c echo.Context) error {
	var req types.RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if req.Command == "" {
		return c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "command is required",
		})
	}

	id := uuid.NewString()
	log.Printf("runnerd: run %s: %s %q", id, req.Command, req.Args)

	start := time.Now()
	result, err := s.runner.Run(c.Request().Context(), req)
	if errors.Is(err, workdir.ErrOutsideRoot) {
		return c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "cwd: " + err.Error(),
		})
	}
	status := runner.Status(result, err)
	metrics.ObserveRun("run", status.Status, time.Since(start))

	if err != nil {
		log.Printf("runnerd: run %s: spawn failed: %v", id, err)
	} else {
		log.Printf("runnerd: run %s: exit %d in %dms", id, result.ExitCode, result.DurationMs)
	}
	return c.JSON(http.StatusOK, status)
}

// runScript handles POST /api/runscript. Failure to materialize the script
// is a server-side I/O problem and answers 500, unlike spawn failures.
func (s *Server) runScript(c echo.Context) error {
	var req types.ScriptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if req.Interpreter == "" {
		return c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "interpreter is required",
		})
	}

	id := uuid.NewString()
	log.Printf("runnerd: runscript %s: interpreter %s, %d byte script", id, req.Interpreter, len(req.Script))

	start := time.Now()
	result, err := s.runner.RunScript(c.Request().Context(), req)
	status := runner.Status(result, err)
	metrics.ObserveRun("runscript", status.Status, time.Since(start))

	if errors.Is(err, runner.ErrScriptWrite) {
		log.Printf("runnerd: runscript %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, status)
	}
	if err != nil {
		log.Printf("runnerd: runscript %s: spawn failed: %v", id, err)
	} else {
		log.Printf("runnerd: runscript %s: exit %d in %dms", id, result.ExitCode, result.DurationMs)
	}
	return c.JSON(http.StatusOK, status)
}
