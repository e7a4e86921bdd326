package main

import "serviq/cmd/serviq/commands"

func main() {
	commands.Execute()
}
