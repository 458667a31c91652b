package main

import "talentos/internal/app/server"

func main() {
	server.Run()
}
