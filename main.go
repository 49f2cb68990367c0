package main

import (
	"os"

	"binviz/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
