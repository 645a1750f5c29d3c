// Command dashboard is the terminal client for the Goal Buddy service.
package main

import "github.com/productivity-app/backend/cmd/dashboard/root"

func main() {
	root.Execute()
}
