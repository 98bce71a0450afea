package main

import (
	"log"

	"github.com/mkraev/costlens/internal/client/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
