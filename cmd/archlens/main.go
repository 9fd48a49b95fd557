package main

import (
	"os"

	"github.com/dshills/archlens/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
