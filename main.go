package main

import (
	"audiolist/cmd"
)

func main() {
	// Cobra exits the process itself on command errors.
	cmd.Execute()
}
