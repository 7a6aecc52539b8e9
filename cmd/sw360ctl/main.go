/*
Package main is the entry point for sw360ctl.

Usage:

	sw360ctl [command]

Available Commands:

	expand      Print the exact-match variants searched for a package URL
	search      Search both realms and print merged results
	index       Load documents into the users or catalog realm
	health      Check connectivity of both realm stores
	version     Show version information
*/
package main

import (
	"os"

	"github.com/eclipse-sw360/sw360-search/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
