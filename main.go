package main

import "lab-timesheet/cmd"

func main() {
	cmd.Execute()
}
