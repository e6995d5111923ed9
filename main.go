package main

import (
	"os"

	"github.com/arcanaland/patience/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
