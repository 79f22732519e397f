// Command demoform is a terminal front-end for the demo-request form. It talks
// to the backend through the same facade the web form uses, so it can run
// against the in-process mock or a live API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
