package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON decoding.
type StructuredJSONConfig struct {
	Paths struct {
		ConfigFile        string `json:"config_file"`
		DefaultConfigFile string `json:"default_config_file"`
		FragmentsDir      string `json:"fragments_dir"`
		DataDir           string `json:"data_dir"`
		HomeDir           string `json:"home_dir"`
	} `json:"paths,omitempty"`

	Service struct {
		User  string `json:"user"`
		Group string `json:"group"`
	} `json:"service,omitempty"`

	Source struct {
		RedisServer string   `json:"redis_server"`
		Stage       string   `json:"stage"`
		DialTimeout Duration `json:"dial_timeout"`
	} `json:"source,omitempty"`

	Supervisor struct {
		Binary string   `json:"binary"`
		Args   []string `json:"args"`
	} `json:"supervisor,omitempty"`

	Odoo struct {
		ContainerType string `json:"container_type"`
		InstanceType  string `json:"instance_type"`
		Stage         string `json:"stage"`
	} `json:"odoo,omitempty"`

	Preflight struct {
		Enabled  bool     `json:"enabled"`
		User     string   `json:"user"`
		Password string   `json:"password"`
		Name     string   `json:"name"`
		Timeout  Duration `json:"timeout"`
	} `json:"preflight,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Paths: Paths{
			ConfigFile:        jsonCfg.Paths.ConfigFile,
			DefaultConfigFile: jsonCfg.Paths.DefaultConfigFile,
			FragmentsDir:      jsonCfg.Paths.FragmentsDir,
			DataDir:           jsonCfg.Paths.DataDir,
			HomeDir:           jsonCfg.Paths.HomeDir,
		},
		Service: Service{
			User:  jsonCfg.Service.User,
			Group: jsonCfg.Service.Group,
		},
		Source: Source{
			RedisServer: jsonCfg.Source.RedisServer,
			Stage:       jsonCfg.Source.Stage,
			DialTimeout: time.Duration(jsonCfg.Source.DialTimeout),
		},
		Supervisor: Supervisor{
			Binary: jsonCfg.Supervisor.Binary,
			Args:   jsonCfg.Supervisor.Args,
		},
		Odoo: Odoo{
			ContainerType: jsonCfg.Odoo.ContainerType,
			InstanceType:  jsonCfg.Odoo.InstanceType,
			Stage:         jsonCfg.Odoo.Stage,
		},
		Preflight: Preflight{
			Enabled:  jsonCfg.Preflight.Enabled,
			User:     jsonCfg.Preflight.User,
			Password: jsonCfg.Preflight.Password,
			Name:     jsonCfg.Preflight.Name,
			Timeout:  time.Duration(jsonCfg.Preflight.Timeout),
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
