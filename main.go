package main

import "github.com/Fezze07/JustUS/cmd"

func main() {
	cmd.Run()
}
