package main

import "gatelog/internal/app/server"

func main() {
	server.Run()
}
