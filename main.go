// Package main is the entry point for the scoutelt CLI, which lands, validates,
// loads and analyzes football scouting data.
package main

import "github.com/pable/go-scout-elt/cmd"

func main() {
	cmd.Execute()
}
