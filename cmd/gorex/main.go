package main

import (
	"os"

	"github.com/twinfer/gorex/cmd/gorex/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
