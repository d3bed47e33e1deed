package main

import "github.com/julienpequegnot/qaboard/cmd"

func main() {
	cmd.Execute()
}
