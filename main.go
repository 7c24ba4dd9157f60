// The main package for the moviecatalog executable.
package main

import (
	"github.com/JakeFAU/moviecatalog/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
