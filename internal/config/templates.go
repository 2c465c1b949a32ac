package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const settingsTemplate = `# pinsearch settings. Every key is optional.
api_base_url: https://api.pinboard.in/v1
# age after which a search triggers a background refresh
staleness: 10m
result_limit: 8
icon: icon.png
# xml (Alfred 2 script filter) or json
output: xml
log_level: warn
# 0 disables the request timeout
http_timeout: 0s
`

const dotenvTemplate = "" +
	"PINSEARCH_API_URL=\n" +
	"PINSEARCH_STALENESS=\n" +
	"PINSEARCH_OUTPUT=\n" +
	"PINSEARCH_LOG_LEVEL=\n"

// EnsureTemplates writes settings.yaml and .env templates into the data directory
// when they do not exist yet. It returns the files it created.
func EnsureTemplates(p Paths) ([]string, error) {
	var created []string
	for _, f := range []struct {
		path string
		body string
		perm os.FileMode
	}{
		{p.SettingsFile(), settingsTemplate, 0o644},
		{p.DotEnvFile(), dotenvTemplate, 0o600},
	} {
		if _, err := os.Stat(f.path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return created, fmt.Errorf("cannot stat %s: %w", f.path, err)
		}
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return created, fmt.Errorf("cannot create dir for %s: %w", f.path, err)
		}
		if err := os.WriteFile(f.path, []byte(f.body), f.perm); err != nil {
			return created, fmt.Errorf("cannot write template %s: %w", f.path, err)
		}
		created = append(created, f.path)
	}
	return created, nil
}
