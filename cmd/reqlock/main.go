package main

import "reqlock/internal/cli"

func main() {
	cli.Execute()
}
