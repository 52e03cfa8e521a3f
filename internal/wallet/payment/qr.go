package payment

import (
	"strings"

	"github/chapool/child-wallet/internal/wallet/erc20"
)

const qrImageServiceURL = "https://api.qrserver.com/v1/create-qr-code/?size=240x240&data="

// BuildQRImageURL returns a URL of a rendered QR image of payload.
func BuildQRImageURL(payload string) string {
	return qrImageServiceURL + escapeURIComponent(payload)
}

// TransferCalldata returns the ERC-20 transfer(receiver, amount) call data of intent.
func TransferCalldata(intent *TransferIntent) ([]byte, error) {
	return erc20.TransferCalldata(intent.Receiver, intent.Amount)
}

// escapeURIComponent percent-encodes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func escapeURIComponent(s string) string {
	const hexDigits = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

func isUnreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
