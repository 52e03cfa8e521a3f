package httpsigner

// KeyRequest selects the key slot of an owner identity.
type KeyRequest struct {
	Owner string `json:"owner"`
	Slot  uint32 `json:"slot"`
}

// KeyResponse carries a hex encoded compressed public key.
type KeyResponse struct {
	PublicKey string `json:"publicKey"`
	Error     string `json:"error,omitempty"`
}

// SignRequest asks the signer for a raw signature of Digest (hex, 32 bytes).
type SignRequest struct {
	Owner  string `json:"owner"`
	Slot   uint32 `json:"slot"`
	Digest string `json:"digest"`
}

// SignResponse carries the hex encoded 64-byte r||s signature.
type SignResponse struct {
	Signature string `json:"signature"`
	Error     string `json:"error,omitempty"`
}
