package rpc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

// Config holds all runtime parameters of the server. It is read from a
// plain key=value file; unrecognized keys are ignored and a malformed
// line is fatal at startup.
type Config struct {
	// TCP listen port
	Port int
	// Worker pool size
	ThreadCount int
	// Snapshot path
	PersistenceFile string
	// Seconds between dumps
	DumpPeriod int
	// Logging configuration
	LogLevel string
	// Prometheus endpoint port (0 = disabled)
	MetricsPort int
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Port:            1234,
		ThreadCount:     4,
		PersistenceFile: "server.config",
		DumpPeriod:      10,
		LogLevel:        "info",
		MetricsPort:     0,
	}
}

// LoadConfig reads a key=value config file and applies it over the
// defaults. Blank lines and '#' comments are ignored by the parser.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	values, err := godotenv.Read(path)
	if err != nil {
		return config, fmt.Errorf("cannot read config file %s: %v", path, err)
	}

	for key, value := range values {
		switch key {
		case "port":
			if config.Port, err = parseIntValue(key, value); err != nil {
				return config, err
			}
		case "thread_count":
			if config.ThreadCount, err = parseIntValue(key, value); err != nil {
				return config, err
			}
		case "persistence_file":
			config.PersistenceFile = value
		case "dump_period":
			if config.DumpPeriod, err = parseIntValue(key, value); err != nil {
				return config, err
			}
		case "log_level":
			config.LogLevel = value
		case "metrics_port":
			if config.MetricsPort, err = parseIntValue(key, value); err != nil {
				return config, err
			}
		}
	}

	return config, nil
}

// parseIntValue parses one numeric config value.
func parseIntValue(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %s", key, value)
	}
	return n, nil
}

// String returns a formatted string representation of the configuration
func (c Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Server")
	addField("Port", strconv.Itoa(c.Port))
	addField("Worker Pool Size", strconv.Itoa(c.ThreadCount))

	addSection("Persistence")
	addField("Snapshot File", c.PersistenceFile)
	addField("Dump Period", fmt.Sprintf("%d sec", c.DumpPeriod))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	if c.MetricsPort > 0 {
		addSection("Metrics")
		addField("Metrics Port", strconv.Itoa(c.MetricsPort))
	}

	return sb.String()
}
