// Package main is the entry point of the mapper-plan command line tool.
package main

import "expression-mapper/cmd/mapper-plan/cmd"

func main() {
	cmd.Execute()
}
