package main

import "github.com/vulcan-files/graphql-files/cmd"

func main() {
	cmd.Execute()
}
