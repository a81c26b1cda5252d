package main

import "github.com/user/vascope/cmd"

func main() {
	cmd.Execute()
}
