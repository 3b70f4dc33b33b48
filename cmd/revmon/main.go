// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/revmon/cmd/revmon/cmd"
)

func main() {
	cmd.Execute()
}
