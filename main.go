package main

import (
	"context"
	"os"

	"pcstore/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
