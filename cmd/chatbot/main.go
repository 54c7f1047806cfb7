package main

import (
	"os"

	"github.com/msto63/chatbot/cmd/chatbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
