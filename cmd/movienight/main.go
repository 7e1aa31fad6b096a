package main

import (
	"github.com/trouze/movienight/internal/cli"
)

func main() {
	cli.Execute()
}
