package main

import "github.com/tsawler/texta/internal/cli"

func main() {
	cli.Execute()
}
