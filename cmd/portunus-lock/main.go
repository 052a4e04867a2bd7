package main

import "github.com/BrandonDHaskell/Portunus/lock/internal/cli"

func main() {
	cli.Execute()
}
