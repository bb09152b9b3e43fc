package main

import (
	"log"

	"github.com/pkoval/gitstate-go/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("gitstate-go: %v", err)
	}
}
