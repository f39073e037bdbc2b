// This program performs administrative tasks against the on-chain registry
// and vault contracts directly, bypassing the service and its record store.
package main

import "github.com/ecochain/ecochain/app/tooling/admin/commands"

func main() {
	commands.Execute()
}
