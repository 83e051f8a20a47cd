package main

import (
	"log"
	"os"

	"github.com/misteriaud/passeri/shell"
)

func main() {
	if err := shell.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
