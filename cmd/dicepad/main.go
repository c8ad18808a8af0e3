package main

import (
	"github.com/dicepad/dicepad/internal/cli"
)

func main() {
	cli.Execute()
}
