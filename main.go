// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/arma2d0/uncrustify/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the ubrace REPL, %s!\n", currentUser.Username)
	fmt.Println("Type a snippet to see its resolved chunks, or ':dialect <name>' to switch languages.")
	repl.Start(os.Stdin, os.Stdout)
}
