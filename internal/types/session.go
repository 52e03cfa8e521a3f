package types

import "time"

type PostLoginPayload struct {
	// Slot selects the key slot of the owner, 0 means the default slot.
	Slot uint32 `json:"slot"`
}

func (p *PostLoginPayload) Validate() []*HTTPValidationErrorDetail {
	return nil
}

type LoginResponse struct {
	Owner     string    `json:"owner"`
	Slot      uint32    `json:"slot"`
	Address   string    `json:"address"`
	StartedAt time.Time `json:"startedAt"`
}

func (r *LoginResponse) Validate() []*HTTPValidationErrorDetail {
	var errs []*HTTPValidationErrorDetail
	if r.Owner == "" {
		errs = append(errs, bodyError("owner", "owner is required"))
	}
	if r.Address == "" {
		errs = append(errs, bodyError("address", "address is required"))
	}
	return errs
}
