package main

import (
	"github.com/forcadev/forca-online/internal/cli"
)

func main() {
	cli.Execute()
}
