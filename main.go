package main

import "github.com/jjenkins/polls/cmd"

func main() {
	cmd.Execute()
}
