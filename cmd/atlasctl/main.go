package main

import "github.com/atlashelp/atlascore-connector/internal/cli"

func main() {
	cli.Execute()
}
