package main

import (
	"fmt"
	"os"

	"github.com/denelabs/walletbridge/cmd/bridgectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
