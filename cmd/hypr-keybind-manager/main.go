package main

import (
	"os"

	"github.com/tidynest/hypr-keybind-manager/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
