package boot

//go:generate mockgen -source=interfaces.go -destination=../mock/boot_mock.go -package=mock

import "context"

// System is the OS access needed for ownership and directory bootstrap.
type System interface {
	// Owner returns the user name owning path.
	Owner(path string) (string, error)

	// Chown recursively changes ownership of path to spec ("user" or
	// "user:group").
	Chown(ctx context.Context, spec, path string) error

	// MakeDir creates path including parents.
	MakeDir(ctx context.Context, path string) error
}

// Supervisor replaces the current process. Exec does not return on success.
type Supervisor interface {
	Exec(binary string, args []string) error
}

// Preflight checks that the database at host:port accepts connections.
type Preflight interface {
	Check(ctx context.Context, host, port string) error
}
