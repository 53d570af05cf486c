// Package config loads run settings and the list of calendar feeds.
//
// Settings come from command-line flags, BIGMATCHES_* environment variables
// and an optional .env file, resolved through viper. The feed list is a
// YAML mapping from competition label to feed URLs, read in file order.
package config
