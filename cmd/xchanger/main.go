package main

import (
	"os"

	"xchanger/internal/adapter/console"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		console.NewPrinter(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}
