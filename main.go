package main

import "github.com/idlbridge/idlbridge/cmd"

// main is the entry point of the idlbridge CLI application.
// It executes the root command which handles argument parsing and subcommand dispatch.
func main() {
	cmd.Execute()
}
