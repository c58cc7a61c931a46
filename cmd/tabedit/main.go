package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/tabedit/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tabedit:", err)
		os.Exit(1)
	}
}
