package main

import "github.com/gaurav-prasanna/link2itinerary/cmd"

func main() {
	cmd.Execute()
}
