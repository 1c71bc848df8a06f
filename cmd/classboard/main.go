package main

import "classboard/cmd/classboard/root"

func main() {
	root.Execute()
}
