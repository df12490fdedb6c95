package main

import "retarget/cmd/retarget/commands"

func main() {
	commands.Execute()
}
