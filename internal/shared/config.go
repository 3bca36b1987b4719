package shared

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Inputs struct {
		Messages string `yaml:"messages"` // path or "classpath:" resource
		BugRank  string `yaml:"bugrank"`  // path or "classpath:" resource
	} `yaml:"inputs"`

	Output struct {
		Path       string `yaml:"path"`        // "target/sonar-rules/rules.xml"
		Encoding   string `yaml:"encoding"`    // IANA name, "UTF-8"
		NameSuffix string `yaml:"name_suffix"` // appended to rule names verbatim
	} `yaml:"output"`

	Resources struct {
		Roots []string `yaml:"roots"` // lookup roots for "classpath:" names
	} `yaml:"resources"`

	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./fbsonar.db"
	} `yaml:"database"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Server struct {
		Addr        string `yaml:"addr"`         // ":8080"
		SessionTTLh int    `yaml:"session_ttlh"` // hours, 24
	} `yaml:"server"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Inputs.Messages = "src/main/resources/messages.xml"
	c.Inputs.BugRank = "src/main/resources/bugrank.txt"
	c.Output.Path = "target/sonar-rules/rules.xml"
	c.Output.Encoding = "UTF-8"
	c.Resources.Roots = []string{"."}
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./fbsonar.db"
	c.Reporting.OutDir = "./reports"
	c.Server.Addr = ":8080"
	c.Server.SessionTTLh = 24
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("FBSONAR_MESSAGES"); v != "" {
		c.Inputs.Messages = v
	}
	if v := os.Getenv("FBSONAR_BUGRANK"); v != "" {
		c.Inputs.BugRank = v
	}
	if v := os.Getenv("FBSONAR_OUT"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("FBSONAR_ENCODING"); v != "" {
		c.Output.Encoding = v
	}
	if v := os.Getenv("FBSONAR_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("FBSONAR_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("FBSONAR_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("FBSONAR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return c, nil
}
