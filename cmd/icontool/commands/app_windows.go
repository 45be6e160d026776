//go:build windows

package commands

import "os/exec"

func startStreamDeck() error {
	return exec.Command(`C:\Program Files\Elgato\StreamDeck\StreamDeck.exe`).Start()
}

func killStreamDeck() error {
	return exec.Command("taskkill", "/t", "/f", "/im", "StreamDeck.exe").Run()
}
