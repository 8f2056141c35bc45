package main

import (
	"fmt"
	"os"
	"strings"
)

// version is set at build time using -ldflags="-X main.version=VERSION"
var version = "dev"

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
