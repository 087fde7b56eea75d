/*
Copyright © 2025 Arjen Schwarz <developer@arjen.eu>
*/
package main

import "github.com/akileshthuniki/preapply/cmd"

func main() {
	cmd.Execute()
}
