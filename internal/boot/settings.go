package boot

// Setting ties a value source name to the config line it overrides.
type Setting struct {
	// Name is looked up in the value source (env var or hash field).
	Name string

	// Prefix locates the config line to replace.
	Prefix string
}

// Line renders the replacement config line for value.
func (s Setting) Line(value string) string {
	return s.Prefix + " = " + value
}

const (
	settingDBHost = "DB_HOST"
	settingDBPort = "DB_PORT"
)

// DefaultSettings are the overrides applied on every boot.
func DefaultSettings() []Setting {
	return []Setting{
		{Name: settingDBHost, Prefix: "db_host"},
		{Name: settingDBPort, Prefix: "db_port"},
	}
}
