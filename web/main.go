package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	static := flag.String("static", "static", "Directory of the web UI")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port)
	webServer.SetStaticDir(*static)

	log.Printf("Sphere Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to render", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
