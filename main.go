package main

import "mcptoggle/cmd"

func main() {
	cmd.Execute()
}
