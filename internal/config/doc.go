// Package config manages user-level settings stored at ~/.capkit/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the global install root and the default log level.
package config
