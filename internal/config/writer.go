package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes cfg to path with a short header. The password is never
// written; it is expected from PARCELUP_PASSWORD or --password.
func WriteYAML(cfg *Config, path string) error {
	out := *cfg
	out.Password = ""

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(header(time.Now()))
	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func header(now time.Time) string {
	return fmt.Sprintf(`# parcelup configuration
# Generated: %s
#
# Set the password through PARCELUP_PASSWORD or --password.
# Run the upgrade with:
#   parcelup upgrade

`, now.Format(time.RFC3339))
}
