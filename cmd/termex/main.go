package main

import "termex/internal/cli"

func main() {
	cli.Execute()
}
