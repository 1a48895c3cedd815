package main

import (
	"fmt"
	"os"

	"yashubustudio/reconciler/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "reconciler: %v\n", err)
		os.Exit(1)
	}
}
