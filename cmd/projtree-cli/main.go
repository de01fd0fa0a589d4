package main

import "projtree/cmd/projtree-cli/cmd"

func main() {
	cmd.Execute()
}
