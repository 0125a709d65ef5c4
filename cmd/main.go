// cmd/main.go
package main

import cmd "github.com/mwiater/mitoolbox/cmd/mitoolbox"

// main starts the mitoolbox CLI application by delegating to the
// cobra root command defined in the mitoolbox package.
func main() {
	cmd.Execute()
}
