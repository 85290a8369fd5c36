package encoder

import "context"

// Runner defines the interface for executing the external encoder process.
// Implementations run exactly one process per call and return its captured
// stdout and stderr. A non-nil error means the process failed to start or
// exited non-zero; callers decide whether a non-zero exit is significant.
type Runner interface {
	Run(ctx context.Context, args []string) (stdout, stderr string, err error)
}
