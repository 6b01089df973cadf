package system

//go:generate mockgen -source=interfaces.go -destination=../mock/runner_mock.go -package=mock

import "context"

// Runner runs an external command to completion and returns its combined
// output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
