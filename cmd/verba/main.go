package main

import (
	"os"

	"verba.fyi/verba/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
