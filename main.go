package main

import "nathanbeddoewebdev/aznet/cmd"

func main() {
	cmd.Execute()
}
