package main

import "animehub/cmd/animehub/command"

func main() {
	command.Execute()
}
