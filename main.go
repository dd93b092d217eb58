package main

import "textlens/cmd"

// @title textlens API
// @version 1.0
// @description Emotion and gibberish analysis of short texts.
// @BasePath /

// Use this cmd to regenerate the Swagger docs: swag init
func main() {
	cmd.Execute()
}
