package main

import "github.com/subcast/subcast/cmd"

func main() {
	cmd.Execute()
}
