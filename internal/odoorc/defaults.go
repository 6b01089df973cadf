package odoorc

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"gopkg.in/ini.v1"
)

const (
	adminPasswordLength = 64
	passwordAlphabet    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// SetDefaults enforces settings the container depends on:
//   - the in-container ports stay at 8069 / 8072, the outside mapping is
//     the orchestrator's business;
//   - logrotate is off, supervisor rotates logs;
//   - an "admin" or empty admin_passwd is replaced with a random string.
func SetDefaults(cfg *ini.File, random func(n int) (string, error)) error {
	opts := cfg.Section(mainSection)
	opts.Key("xmlrpc_port").SetValue("8069")
	opts.Key("longpolling_port").SetValue("8072")
	opts.Key("logrotate").SetValue("False")

	if pw := opts.Key("admin_passwd").Value(); pw == "admin" || pw == "" {
		generated, err := random(adminPasswordLength)
		if err != nil {
			return fmt.Errorf("error generating admin password: %w", err)
		}
		opts.Key("admin_passwd").SetValue(generated)
	}

	return nil
}

// RandomString returns n characters drawn from [a-zA-Z0-9] with crypto/rand.
func RandomString(n int) (string, error) {
	limit := big.NewInt(int64(len(passwordAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = passwordAlphabet[idx.Int64()]
	}

	return string(b), nil
}
