//go:build cli
// +build cli

package main

import (
	_ "starter.GO/custom"

	"starter.GO/cmd"
	"starter.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
