// Package main is the entry point for the clinicctl binary.
package main

import (
	"os"

	cli "clinic-admin/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
