// Command oxygraph configures render graphs from pipeline policies and prints them as YAML.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
