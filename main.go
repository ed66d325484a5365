package main

import (
	"os"

	"github.com/kamusis/sfd-cli/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
