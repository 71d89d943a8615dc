package main

import "github.com/naveego/storyreader/cmd"

func main() {
	cmd.Execute()
}
