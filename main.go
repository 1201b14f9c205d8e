package main

import (
	"os"

	"github.com/scan-io-git/sarif2md/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
