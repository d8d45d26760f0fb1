// Command towerctl is a terminal client for the Logistics Control Tower
// backend. It keeps a durable session under the user config directory, so
// separate invocations share one login.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
