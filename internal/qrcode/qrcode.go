package qrcode

import (
	"fmt"
	"net/url"

	qr "github.com/skip2/go-qrcode"
)

// Size of the generated image in pixels.
const Size = 256

// BoardURL is the address of a session's board view on host.
func BoardURL(host, gameID string) string {
	return fmt.Sprintf("http://%s/board.html?game=%s", host, url.QueryEscape(gameID))
}

// BoardLink encodes the board view address of a session as a PNG QR code,
// so a phone or second screen can follow the game.
func BoardLink(host, gameID string) ([]byte, error) {
	png, err := qr.Encode(BoardURL(host, gameID), qr.Medium, Size)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return png, nil
}
