package piopack

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Config struct
type Config struct {
	Values map[string]string
}

// loadConfig reads an optional key=value conf file next to the checkout.
// A missing file is not an error; the environment can carry everything.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{Values: make(map[string]string)}

	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			val := strings.TrimSpace(parts[1])
			val = strings.Trim(val, `"'`)
			cfg.Values[key] = val
		}
		if err := scanner.Err(); err != nil {
			return cfg, err
		}
	}

	mergeEnvOverrides(cfg)

	return cfg, nil
}

// mergeEnvOverrides imports the environment variables the pipeline reacts
// to; the environment always wins over the conf file.
func mergeEnvOverrides(cfg *Config) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "PIOPACK_") || strings.HasPrefix(env, "R2_") {
			parts := strings.SplitN(env, "=", 2)
			if len(parts) == 2 {
				cfg.Values[parts[0]] = parts[1]
			}
		}
	}

	for _, key := range []string{"PLATFORMIO_PACKAGE_VERSION", "PLATFORMIO_PACKAGE_SYSTEM_VALUES", "PLATFORMIO_CORE_DIR", "GITHUB_REF"} {
		if v := os.Getenv(key); v != "" {
			cfg.Values[key] = v
		}
	}
}

func initConfig(cfg *Config) {
	Debug = cfg.Values["PIOPACK_DEBUG"] == "1"

	archiveMode = cfg.Values["PIOPACK_ARCHIVE"]
	if archiveMode == "" {
		archiveMode = "pio"
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	buildRoot = filepath.Join(cwd, "build")
	resultDir = filepath.Join(cwd, "result")
}
