package main

import "github.com/pfrederiksen/bref-rosters/internal/cli"

func main() {
	cli.Execute()
}
