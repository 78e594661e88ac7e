package main

import "unyson/cmd"

func main() {
	cmd.Execute()
}
