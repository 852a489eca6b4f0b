package main

import "piopack/internal/piopack"

func main() {
	piopack.Main()
}
