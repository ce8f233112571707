// Command admin inspects and maintains the stored inventories.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/osse101/InventoryRestore_Go/internal/admin"
)

func main() {
	_ = godotenv.Load()

	if err := admin.App(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
