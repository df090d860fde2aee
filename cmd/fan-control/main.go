// Command fan-control switches a cooling fan on a GPIO line according to a
// thermal sensor, using two temperature thresholds with hysteresis.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(run).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fan-control: %v\n", err)
		os.Exit(1)
	}
}
