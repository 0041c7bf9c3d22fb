package main

import "github.com/sweepbot/sweepbot/cmd"

func main() {
	cmd.Execute()
}
