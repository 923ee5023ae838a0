package main

import "goginie/commands"

func main() {
	commands.Execute()
}
