// Package config loads ringtail configuration from YAML or JSON files and
// the environment.
//
// # Core Components
//
// Config: logging, metrics endpoint, NATS connection and a map of named
// rings. Each RingConfig picks a variant (static or dynamic), a capacity,
// an overflow policy for the synchronized buffer and whether the ring
// exports metrics.
//
// Loader: merges Defaults, then each file layer key by key, then RINGTAIL_*
// environment variables, and validates the result. The file format follows
// the extension (.json, .yaml, .yml).
//
// SafeConfig: RWMutex wrapper that hands out deep copies and only accepts
// valid updates.
//
// # Basic Usage
//
//	loader := config.NewLoader()
//	loader.AddLayer("ringtail.yaml")
//	loader.AddLayer("ringtail.local.json") // overrides
//
//	cfg, err := loader.Load()
//	if err != nil {
//		return err
//	}
//	ring, _ := cfg.Ring("default")
//
// # Environment Variables
//
//	RINGTAIL_LOG_LEVEL, RINGTAIL_LOG_FORMAT
//	RINGTAIL_NATS_URLS (comma separated), RINGTAIL_NATS_SUBJECT
//	RINGTAIL_NATS_USERNAME, RINGTAIL_NATS_PASSWORD, RINGTAIL_NATS_TOKEN
//	RINGTAIL_METRICS_PORT (also enables the endpoint)
//
// # File Safety
//
// Files are read only when they are regular files of at most 1MB with a
// .json, .yaml or .yml extension. Relative paths may not leave the working
// directory. Nesting deeper than 32 levels is rejected before decoding, and
// files are written with mode 0600.
package config
