package main

import "github.com/KaramelBytes/cfpstats/cmd"

func main() {
	cmd.Execute()
}
