package source

import (
	"context"
	"os"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvSource reads settings from environment variables of the same name.
type EnvSource struct {
	lookup LookupFunc
}

// NewEnvSource builds an EnvSource over lookup; nil means os.LookupEnv.
func NewEnvSource(lookup LookupFunc) *EnvSource {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	return &EnvSource{lookup: lookup}
}

// Lookup returns the variable's value. Unset and empty are both absent.
func (s *EnvSource) Lookup(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	v, ok := s.lookup(name)
	if !ok || v == "" {
		return "", false, nil
	}

	return v, true, nil
}

// Name implements Source.
func (s *EnvSource) Name() string {
	return "env"
}
