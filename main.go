package main

import "github.com/Lilsadiq8345/Todo/cmd"

func main() {
	cmd.Execute()
}
