package config

import (
	"fmt"
	"os"
)

const starterConfig = `# reportlink configuration
# root: /path/to/project          # empty: discover from the enclosing git repo

server:
  listen: ":7078"
  link_prefix: "/browse"

cache:
  # path: reportlink-cache.db     # empty: in-memory cache only
  ttl: "168h"
  prune_interval: "1h"

events:
  enabled: false
  # url: "nats://localhost:4222"
  # subject: "reportlink.dead_refs"

monitoring:
  health:
    path: "/healthz"
  metrics:
    enabled: false
    path: "/metrics"
`

// WriteStarter writes a commented starter configuration file.
func WriteStarter(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
