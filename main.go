package main

import "github.com/KaramelBytes/paperdash/cmd"

func main() {
	cmd.Execute()
}
