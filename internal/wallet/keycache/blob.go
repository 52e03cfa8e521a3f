package keycache

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/wallet/address"
)

// storedRecord is the persisted JSON form of a PublicKeyRecord.
type storedRecord struct {
	Principal      string    `json:"principal"`
	Slot           uint32    `json:"slot"`
	PublicKeyHex   string    `json:"publicKeyHex"`
	DerivedAddress string    `json:"derivedAddress"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func encodeRecord(rec *PublicKeyRecord) ([]byte, error) {
	blob, err := json.Marshal(storedRecord{
		Principal:      rec.OwnerIdentity,
		Slot:           rec.Slot,
		PublicKeyHex:   address.PublicKeyToHex(rec.PublicKey[:]),
		DerivedAddress: address.ChecksumHex(rec.Address),
		UpdatedAt:      rec.ResolvedAt.UTC(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal key record")
	}

	return blob, nil
}

// decodeRecord parses blob and checks it belongs to (owner, slot). The address is
// derived again from the public key and must equal the stored one.
func decodeRecord(blob []byte, owner string, slot uint32) (*PublicKeyRecord, error) {
	var stored storedRecord
	if err := json.Unmarshal(blob, &stored); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal key record")
	}

	if stored.Principal != owner {
		return nil, errors.New("key record belongs to another owner")
	}
	if stored.Slot != slot {
		return nil, errors.Errorf("key record is for slot %d", stored.Slot)
	}

	publicKey, err := address.PublicKeyFromHex(stored.PublicKeyHex)
	if err != nil {
		return nil, err
	}

	derived, err := address.DeriveAddress(publicKey)
	if err != nil {
		return nil, err
	}

	storedAddress, err := address.ParseAddress(stored.DerivedAddress)
	if err != nil {
		return nil, err
	}
	if storedAddress != derived {
		return nil, errors.New("stored address does not match public key")
	}

	rec := &PublicKeyRecord{
		OwnerIdentity: owner,
		Slot:          slot,
		Address:       derived,
		ResolvedAt:    stored.UpdatedAt,
	}
	copy(rec.PublicKey[:], publicKey)

	return rec, nil
}
