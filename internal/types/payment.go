package types

import "github.com/ethereum/go-ethereum/common"

type PostPaymentURIPayload struct {
	Receiver string `json:"receiver"`
	// Amount in token units, e.g. "12.5".
	Amount  string `json:"amount"`
	ChainID uint64 `json:"chainId"`
}

func (p *PostPaymentURIPayload) Validate() []*HTTPValidationErrorDetail {
	var errs []*HTTPValidationErrorDetail
	if p.Receiver == "" {
		errs = append(errs, bodyError("receiver", "receiver is required"))
	} else if !common.IsHexAddress(p.Receiver) {
		errs = append(errs, bodyError("receiver", "receiver must be a hex address"))
	}
	if p.Amount == "" {
		errs = append(errs, bodyError("amount", "amount is required"))
	}
	return errs
}

type PaymentURIResponse struct {
	ChainID    uint64 `json:"chainId"`
	URI        string `json:"uri"`
	QRImageURL string `json:"qrImageUrl"`
	RawAmount  string `json:"rawAmount"`
}

func (r *PaymentURIResponse) Validate() []*HTTPValidationErrorDetail {
	if r.URI == "" {
		return []*HTTPValidationErrorDetail{bodyError("uri", "uri is required")}
	}
	return nil
}

type PostPaymentPayload struct {
	Payload string `json:"payload"`
	ChainID uint64 `json:"chainId"`
}

func (p *PostPaymentPayload) Validate() []*HTTPValidationErrorDetail {
	if p.Payload == "" {
		return []*HTTPValidationErrorDetail{bodyError("payload", "payload is required")}
	}
	return nil
}

type PaymentIntentResponse struct {
	ChainID  uint64 `json:"chainId"`
	Token    string `json:"token"`
	Receiver string `json:"receiver"`
	Amount   Amount `json:"amount"`
}

func (r *PaymentIntentResponse) Validate() []*HTTPValidationErrorDetail {
	if r.Token == "" || r.Receiver == "" {
		return []*HTTPValidationErrorDetail{bodyError("token", "token and receiver are required")}
	}
	return nil
}

type TransferResponse struct {
	ChainID     uint64 `json:"chainId"`
	TxHash      string `json:"txHash"`
	From        string `json:"from"`
	Nonce       uint64 `json:"nonce"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
}

func (r *TransferResponse) Validate() []*HTTPValidationErrorDetail {
	if r.TxHash == "" {
		return []*HTTPValidationErrorDetail{bodyError("txHash", "txHash is required")}
	}
	return nil
}
