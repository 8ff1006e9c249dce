package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/notas/cmd/notas/internal/command"
)

func main() {
	_ = godotenv.Load()

	if err := command.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
