package odoorc

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// DatabaseAddress returns db_host and db_port from the [options] section of
// the config file at path. Missing keys and Odoo's "False" placeholder read
// as empty.
func DatabaseAddress(path string) (host, port string, err error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return "", "", fmt.Errorf("error loading odoo config: %w", err)
	}

	opts := cfg.Section(mainSection)
	return optionValue(opts, "db_host"), optionValue(opts, "db_port"), nil
}

func optionValue(section *ini.Section, key string) string {
	if !section.HasKey(key) {
		return ""
	}

	v := strings.TrimSpace(section.Key(key).String())
	if strings.EqualFold(v, "false") {
		return ""
	}

	return v
}
