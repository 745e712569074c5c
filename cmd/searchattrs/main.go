// Command searchattrs ensures the custom Temporal search attributes used to
// filter workflow executions exist in a namespace.
//
// # Configuration
//
// Settings come from an optional YAML file (--config), the environment and
// flags, flags taking precedence:
//
//	TEMPORAL_ADDRESS    - Temporal frontend address (default: "localhost:7233")
//	TEMPORAL_NAMESPACE  - Namespace to reconcile (default: "default")
//	LOG_DEBUG           - Enable debug logs (default: false)
//	LOG_FORMAT          - "json" or "terminal" (default: based on output)
//
// # Example
//
//	TEMPORAL_ADDRESS=temporal:7233 searchattrs reconcile
//	searchattrs list --namespace postiz --system
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
