package types

// PlaceOrderLine asks for count units of one catalog item.
type PlaceOrderLine struct {
	ItemID int64
	Count  int
}

// PlaceOrderInput is the command to create an order for a member.
type PlaceOrderInput struct {
	MemberID int64
	Lines    []PlaceOrderLine
	// IdempotencyKey deduplicates retried requests, both inline and as a durable workflow.
	IdempotencyKey string
}
