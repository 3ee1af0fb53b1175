//go:build cli
// +build cli

package main

import (
	"homestock.GO/cmd"
	"homestock.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
