package main

import "github.com/fleetworks/haulkit/cmd"

func main() {
	cmd.Execute()
}
