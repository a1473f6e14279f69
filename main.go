package main

import "github.com/KaramelBytes/dsreport-cli/cmd"

func main() {
	cmd.Execute()
}
