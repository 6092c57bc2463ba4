package main

import (
	"github.com/ProjectsTask/TraitSigner/cmd"
)

// main 程序入口, 子命令见 cmd 包: daemon, token, sign-update
func main() {
	cmd.Execute()
}
