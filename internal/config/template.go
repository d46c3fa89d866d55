package config

import (
	"fmt"
	"os"
)

// WriteTemplate writes a commented starter config to path.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}

	return os.WriteFile(path, []byte(Template), 0o600)
}

// Template is the starter configuration written by WriteTemplate.
const Template = `name = "galacticbuf"
addr = ":8080"

# trace, debug, info, warn, error, disabled
log_level = "info"
# console or json
log_format = "console"

# HMAC key for bearer tokens; a random key is generated when empty
token_secret = ""
token_ttl = "24h"

max_depth = 32
cors_origins = ["http://localhost:3000"]

# identity, zstd, s2 or lz4
response_encoding = "identity"
`
