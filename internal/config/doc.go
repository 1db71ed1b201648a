// Package config manages user-level settings stored at ~/.buildconf/config.yaml.
// Every key can be overridden with a BUILDCONF_ environment variable, where
// dots become underscores (log.level is BUILDCONF_LOG_LEVEL).
package config
