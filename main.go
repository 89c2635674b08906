package main

import "github.com/MrPickle311/database/cmd"

func main() {
	cmd.Execute()
}
