// Package config provides configuration management for programctl.
//
// Configuration is loaded from YAML files and merged in order, with later
// sources overriding earlier ones:
//
//  1. Default configuration (compiled in)
//  2. User configuration (~/.config/programctl/config.yaml)
//  3. Project configuration (./.programctl/config.yaml)
//
// Passing an explicit path to LoadConfig (the --config flag) replaces the
// user and project files. Command-line flags are applied by the caller on
// top of the result.
//
// # Configuration Structure
//
//	api:
//	  baseURL: "http://localhost:8080/"
//	  timeout: 10s      # unset: no timeout
//	  retryMax: 0       # retries on connection errors and 5xx answers
//	ui:
//	  pageSize: 20
//	  sort: "id,asc"    # unset: the list is requested without paging parameters
//	logLevel: info
//
// A zero value in a file never overrides a value from an earlier layer.
//
// # Usage Example
//
//	cfg, err := config.LoadConfig("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.BaseURL)
package config
