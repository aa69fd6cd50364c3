package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is a product line in the cart. Attributes holds every display field the
// catalog returned (title, price, image, ...) as raw JSON so the cart never
// reinterprets them.
type Item struct {
	ID         int64
	Amount     int
	Attributes map[string]json.RawMessage
}

// Product is a catalog record as served by the product source.
type Product struct {
	ID         int64
	Attributes map[string]json.RawMessage
}

func NewItem(p Product) Item {
	return Item{
		ID:         p.ID,
		Amount:     1,
		Attributes: cloneAttributes(p.Attributes),
	}
}

func (i Item) WithAmount(amount int) Item {
	return Item{
		ID:         i.ID,
		Amount:     amount,
		Attributes: cloneAttributes(i.Attributes),
	}
}

func (i Item) Clone() Item {
	return i.WithAmount(i.Amount)
}

func (i Item) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(i.Attributes)+2)
	for k, v := range i.Attributes {
		fields[k] = v
	}

	id, err := json.Marshal(i.ID)
	if err != nil {
		return nil, err
	}
	amount, err := json.Marshal(i.Amount)
	if err != nil {
		return nil, err
	}
	fields["id"] = id
	fields["amount"] = amount

	return json.Marshal(fields)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	id, attrs, err := splitRecord(data)
	if err != nil {
		return err
	}

	amount := 0
	if raw, ok := attrs["amount"]; ok {
		if err := json.Unmarshal(raw, &amount); err != nil {
			return fmt.Errorf("decode amount: %w", err)
		}
		delete(attrs, "amount")
	}

	i.ID = id
	i.Amount = amount
	i.Attributes = attrs
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(p.Attributes)+1)
	for k, v := range p.Attributes {
		fields[k] = v
	}
	id, err := json.Marshal(p.ID)
	if err != nil {
		return nil, err
	}
	fields["id"] = id
	return json.Marshal(fields)
}

// UnmarshalJSON drops any "amount" the catalog sends; cart quantity is owned
// by the cart.
func (p *Product) UnmarshalJSON(data []byte) error {
	id, attrs, err := splitRecord(data)
	if err != nil {
		return err
	}
	delete(attrs, "amount")

	p.ID = id
	p.Attributes = attrs
	return nil
}

func splitRecord(data []byte) (int64, map[string]json.RawMessage, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return 0, nil, fmt.Errorf("record is null")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return 0, nil, err
	}

	raw, ok := fields["id"]
	if !ok {
		return 0, nil, fmt.Errorf("record has no id")
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, nil, fmt.Errorf("decode id: %w", err)
	}
	delete(fields, "id")

	return id, fields, nil
}

func cloneAttributes(attrs map[string]json.RawMessage) map[string]json.RawMessage {
	if attrs == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(attrs))
	for k, v := range attrs {
		cp := make(json.RawMessage, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}
