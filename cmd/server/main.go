package main

import "github.com/thereayou/poker-live/internal/server"

func main() {
	srv := server.NewServer()
	srv.Run()
}
