package main

import "github.com/Tiliavir/daysketch/cmd"

func main() {
	cmd.Execute()
}
