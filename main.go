package main

import (
	"os"

	"venv-wizard/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
