package main

import "github.com/KaramelBytes/fraudeval/cmd"

func main() {
	cmd.Execute()
}
