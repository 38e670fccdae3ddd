package main

import (
	"github.com/consensys/go-polyscan/pkg/cmd"
)

func main() {
	cmd.Execute()
}
