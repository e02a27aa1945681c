package main

import "github.com/nkcx/mediawiki-docker/cmd"

func main() {
	cmd.Execute()
}
