package types

import "strings"

const (
	MessageEncodingUTF8 = "utf8"
	MessageEncodingHex  = "hex"
)

type GetWalletAddressResponse struct {
	Owner     string `json:"owner"`
	Slot      uint32 `json:"slot"`
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
}

func (r *GetWalletAddressResponse) Validate() []*HTTPValidationErrorDetail {
	if r.Address == "" {
		return []*HTTPValidationErrorDetail{bodyError("address", "address is required")}
	}
	return nil
}

type GetWalletBalanceParams struct {
	ChainID uint64 `query:"chain_id"`
}

func (p *GetWalletBalanceParams) Validate() []*HTTPValidationErrorDetail {
	return nil
}

type Amount struct {
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
	Symbol    string `json:"symbol"`
	Decimals  uint8  `json:"decimals"`
}

type TokenAmount struct {
	Amount
	Address string `json:"address"`
}

type GetWalletBalanceResponse struct {
	ChainID uint64       `json:"chainId"`
	Address string       `json:"address"`
	Native  Amount       `json:"native"`
	Token   *TokenAmount `json:"token,omitempty"`
}

func (r *GetWalletBalanceResponse) Validate() []*HTTPValidationErrorDetail {
	if r.ChainID == 0 {
		return []*HTTPValidationErrorDetail{bodyError("chainId", "chainId is required")}
	}
	return nil
}

type PostSignMessagePayload struct {
	Message string `json:"message"`
	// Encoding is utf8 (default) or hex.
	Encoding string `json:"encoding"`
}

func (p *PostSignMessagePayload) Validate() []*HTTPValidationErrorDetail {
	var errs []*HTTPValidationErrorDetail
	if p.Message == "" {
		errs = append(errs, bodyError("message", "message is required"))
	}

	switch strings.ToLower(p.Encoding) {
	case "", MessageEncodingUTF8, MessageEncodingHex:
	default:
		errs = append(errs, bodyError("encoding", "encoding must be utf8 or hex"))
	}
	return errs
}

type SignatureResponse struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
	R         string `json:"r"`
	S         string `json:"s"`
	V         uint8  `json:"v"`
}

func (r *SignatureResponse) Validate() []*HTTPValidationErrorDetail {
	if r.Signature == "" {
		return []*HTTPValidationErrorDetail{bodyError("signature", "signature is required")}
	}
	return nil
}

type PostSignTypedDataPayload struct {
	TypedData map[string]any `json:"typedData"`
}

func (p *PostSignTypedDataPayload) Validate() []*HTTPValidationErrorDetail {
	if len(p.TypedData) == 0 {
		return []*HTTPValidationErrorDetail{bodyError("typedData", "typedData is required")}
	}
	return nil
}

type Token struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type Chain struct {
	ChainID      uint64 `json:"chainId"`
	Name         string `json:"name"`
	NativeSymbol string `json:"nativeSymbol"`
	Token        *Token `json:"token,omitempty"`
}

type GetChainsResponse struct {
	DefaultChainID uint64   `json:"defaultChainId"`
	Chains         []*Chain `json:"chains"`
}

func (r *GetChainsResponse) Validate() []*HTTPValidationErrorDetail {
	if r.DefaultChainID == 0 {
		return []*HTTPValidationErrorDetail{bodyError("defaultChainId", "defaultChainId is required")}
	}
	return nil
}
