package main

import "dispatch-tracker/cmd"

func main() {
	cmd.Execute()
}
