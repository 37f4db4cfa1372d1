package whatsapp

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"merkaz_backend/platform/apperr"
)

const (
	DefaultQRSize = 256
	MinQRSize     = 128
	MaxQRSize     = 1024

	// MsgLinkTooLongForQR is returned when the link exceeds QR capacity even
	// at the lowest recovery level.
	MsgLinkTooLongForQR = "message too long for a QR code"
)

// QRCode renders a deep link as a PNG so desktop visitors can continue on
// their phone. Sizes outside [MinQRSize, MaxQRSize] are clamped. Links that
// do not fit at medium recovery are retried at low recovery; links that fit
// neither yield a validation error.
func QRCode(link string, size int) ([]byte, error) {
	switch {
	case size <= 0:
		size = DefaultQRSize
	case size < MinQRSize:
		size = MinQRSize
	case size > MaxQRSize:
		size = MaxQRSize
	}

	code, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		code, err = qrcode.New(link, qrcode.Low)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, MsgLinkTooLongForQR, err).
			WithDetails(fmt.Sprintf("link is %d bytes", len(link)))
	}

	png, err := code.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
