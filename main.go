package main

import "ai-access-manager/cmd"

func main() {
	cmd.Execute()
}
