package main

import "market-codegen/internal/cli"

func main() {
	cli.Execute()
}
