// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration, including [[source]] tables
//
// A complete configuration file:
//
//	[log]
//	level = "info"
//
//	[sync]
//	trigger = true
//	min_interval = "1h"
//	startup_delay = "3s"
//	check_interval = "1m"
//
//	[http]
//	timeout = "30s"
//	rate_per_second = 2
//	user_agent = "tingsync/1.0"
//
//	[storage]
//	data_dir = "/var/lib/tingsync"
//
//	[server]
//	addr = ":8080"
//
//	[[source]]
//	id = "cases"
//	min_interval = "15m"
//	[source.fields]
//	status = ["status.navn", "statusnavn"]
package file
