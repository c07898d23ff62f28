// Package config loads cardview settings.
//
// # Resolution Order
//
//  1. Built-in defaults (see Default)
//  2. ~/.config/cardview/config.toml, or the path passed to Load
//  3. A .env file in the working directory, loaded into the environment
//     without overriding variables that are already set
//  4. CARDVIEW_* environment variables
//
// A missing config file is not an error.
//
// # TOML Format
//
//	api_base  = "http://127.0.0.1:8000"  # items API the card views query
//	listen    = "127.0.0.1:8000"         # address for `cardview serve`
//	data_path = "data.json"              # item catalog served by `cardview serve`
//	web_dir   = "web"                    # static assets (wasm build, wasm_exec.js)
//	log_level = "info"
//	log_file  = "~/.local/state/cardview/cardview.log"  # terminal mode only
//
// Every field is optional. Tilde expansion is applied to data_path, web_dir
// and log_file.
//
// # Environment
//
//   - CARDVIEW_API_BASE overrides api_base
//   - CARDVIEW_LISTEN overrides listen
//   - CARDVIEW_DATA overrides data_path
//   - CARDVIEW_LOG_LEVEL overrides log_level
package config
