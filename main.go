package main

import (
	"os"

	"github.com/prepdesk/prepdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
