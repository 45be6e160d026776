//go:build !windows

package commands

import "os/exec"

func startStreamDeck() error {
	return exec.Command("open", "-a", "Elgato Stream Deck").Run()
}

func killStreamDeck() error {
	return exec.Command("killall", "Stream Deck").Run()
}
