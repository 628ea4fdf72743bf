package main

import "github.com/rpupo63/portfolio-admin/cmd"

func main() {
	cmd.Execute()
}
