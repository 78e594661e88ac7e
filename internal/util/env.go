package util

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var envKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadEnvFile reads the variables handed to every wp process, such as
// WP_CLI_CACHE_DIR or WP_CLI_PHP_ARGS. Lines look like `KEY=value`, with an
// optional `export ` prefix and optionally quoted values. A key set twice
// keeps its last value at its first position. A missing file is not an error.
func LoadEnvFile(filePath string) ([]string, error) {
	if filePath == "" {
		return nil, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			Log.Warnf("Environment file not found at %s, continuing without it.", filePath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open env file %s: %w", filePath, err)
	}
	defer file.Close()

	var keys []string
	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if key == "" {
			Log.Warnf("Skipping invalid line %d in env file %s", lineNumber, filePath)
			continue
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		} else {
			Log.Debugf("%s is set more than once in %s, keeping line %d", key, filePath, lineNumber)
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading env file %s: %w", filePath, err)
	}

	vars := make([]string, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, k+"="+values[k])
	}
	Log.Debugf("Loaded %d variables for wp from %s", len(vars), filePath)
	return vars, nil
}

// parseEnvLine returns ok=false for blank and comment lines, and an empty
// key for lines that are not a valid assignment.
func parseEnvLine(raw string) (key, value string, ok bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || !envKeyPattern.MatchString(key) {
		return "", "", true
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}
