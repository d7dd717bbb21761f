// Package main provides the capsid CLI application.
// capsid builds curated viral capsid sequence datasets from UniProt.
package main

import (
	"github.com/retroevo/capsid/cmd"
)

func main() {
	cmd.Execute()
}
