package main

import "github/chapool/child-wallet/cmd"

func main() {
	cmd.Execute()
}
