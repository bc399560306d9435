// Command soundwave runs the SoundWave music discovery web application.
package main

func main() {
	Execute()
}
