package main

import (
	"log"
	"os"

	"github.com/misteriaud/passeri/backend"
)

func main() {
	if err := backend.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
