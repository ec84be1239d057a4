package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
)

type normalizedPlaceOrderInput struct {
	MemberID int64                `json:"memberId"`
	Lines    []normalizedOrderLine `json:"lines"`
}

type normalizedOrderLine struct {
	ItemID int64 `json:"itemId"`
	Count  int   `json:"count"`
}

// FingerprintPlaceOrder builds a deterministic hash of the placement payload
// (excluding the idempotency key). Line order does not change the hash.
func FingerprintPlaceOrder(input types.PlaceOrderInput) (string, error) {
	payload, err := json.Marshal(normalizePlaceOrderInput(input))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func normalizePlaceOrderInput(input types.PlaceOrderInput) normalizedPlaceOrderInput {
	lines := make([]normalizedOrderLine, 0, len(input.Lines))
	for _, line := range input.Lines {
		lines = append(lines, normalizedOrderLine{ItemID: line.ItemID, Count: line.Count})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].ItemID != lines[j].ItemID {
			return lines[i].ItemID < lines[j].ItemID
		}
		return lines[i].Count < lines[j].Count
	})
	return normalizedPlaceOrderInput{MemberID: input.MemberID, Lines: lines}
}
