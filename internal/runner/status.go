package runner

import (
	"fmt"

	"github.com/runnerhq/runnerd/pkg/types"
)

// Status maps a (result, error) pair from Run or RunScript to the wire
// status. The mapping is total: spawn error -> error status, zero exit ->
// success, anything else that ran -> failure.
func Status(res *types.RunResult, err error) types.RunStatus {
	switch {
	case err != nil:
		return types.SpawnError(err.Error())
	case res.Signal != "":
		return types.Failure(res, fmt.Sprintf("terminated by signal: %s", res.Signal))
	case res.ExitCode != 0:
		return types.Failure(res, fmt.Sprintf("exit code %d", res.ExitCode))
	default:
		return types.Success(res)
	}
}
