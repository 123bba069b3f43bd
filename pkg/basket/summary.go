package basket

// Summary is the derived view of a basket, recomputed on every read.
// TotalPrice equals Subtotal; taxes and shipping are not modeled.
type Summary struct {
	ItemCount  int `json:"item_count"`
	TotalItems int `json:"total_items"`
	Subtotal   int `json:"subtotal"`
	TotalPrice int `json:"total_price"`
}

// Summarize computes the summary for an item sequence.
func Summarize(items []Item) Summary {
	s := Summary{ItemCount: len(items)}
	for _, it := range items {
		s.TotalItems += it.Quantity
		s.Subtotal += it.TotalPrice * it.Quantity
	}
	s.TotalPrice = s.Subtotal
	return s
}
