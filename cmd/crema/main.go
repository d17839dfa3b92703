package main

import "github.com/crema-dev/crema/internal/cli"

func main() {
	cli.Execute()
}
