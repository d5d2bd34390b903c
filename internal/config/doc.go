// Package config loads piiguard configuration from local and global YAML files
// and reads anonymization jobs. CLI code applies precedence: flags first, then
// the local file, then the global file.
package config
