package main

import "github.com/sammiviz/sammi/internal/cli"

func main() {
	cli.Execute()
}
