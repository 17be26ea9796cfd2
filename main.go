// Package main is the entry point for the rivals2-log-parser CLI tool, which
// extracts ranked match results from Rivals 2 client logs and records them.
package main

import "github.com/sillypears/rivals2-log-parser/cmd"

func main() {
	cmd.Execute()
}
