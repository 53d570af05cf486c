package main

import "github.com/pfrederiksen/bigmatches/internal/cli"

func main() {
	cli.Execute()
}
