package cart

import (
	"encoding/json"
	"fmt"
)

// StorageKey is the key the cart document is persisted under.
const StorageKey = "@RocketShoes:cart"

// Cart is an ordered list of items, unique by product id. Every method returns
// a fresh Cart and leaves the receiver untouched.
type Cart struct {
	items []Item
}

func New(items ...Item) Cart {
	c := Cart{}
	for _, item := range items {
		c = c.Upsert(item)
	}
	return c
}

func (c Cart) Items() []Item {
	out := make([]Item, len(c.items))
	for i, item := range c.items {
		out[i] = item.Clone()
	}
	return out
}

func (c Cart) Len() int {
	return len(c.items)
}

// Units is the sum of all item amounts.
func (c Cart) Units() int {
	total := 0
	for _, item := range c.items {
		total += item.Amount
	}
	return total
}

func (c Cart) Find(productID int64) (Item, bool) {
	for _, item := range c.items {
		if item.ID == productID {
			return item.Clone(), true
		}
	}
	return Item{}, false
}

func (c Cart) Contains(productID int64) bool {
	_, ok := c.Find(productID)
	return ok
}

// Upsert replaces the item with the same id in place, or appends it.
func (c Cart) Upsert(item Item) Cart {
	out := make([]Item, 0, len(c.items)+1)
	replaced := false
	for _, existing := range c.items {
		if existing.ID == item.ID {
			out = append(out, item.Clone())
			replaced = true
			continue
		}
		out = append(out, existing.Clone())
	}
	if !replaced {
		out = append(out, item.Clone())
	}
	return Cart{items: out}
}

func (c Cart) Without(productID int64) Cart {
	out := make([]Item, 0, len(c.items))
	for _, existing := range c.items {
		if existing.ID != productID {
			out = append(out, existing.Clone())
		}
	}
	return Cart{items: out}
}

// WithAmount sets the amount of the matching item. A missing id yields an
// equal cart.
func (c Cart) WithAmount(productID int64, amount int) Cart {
	out := make([]Item, 0, len(c.items))
	for _, existing := range c.items {
		if existing.ID == productID {
			out = append(out, existing.WithAmount(amount))
			continue
		}
		out = append(out, existing.Clone())
	}
	return Cart{items: out}
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

// UnmarshalJSON rejects duplicate ids and items whose amount is missing or
// below 1.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("duplicate product id %d", item.ID)
		}
		if item.Amount < 1 {
			return fmt.Errorf("product %d has amount %d, want at least 1", item.ID, item.Amount)
		}
		seen[item.ID] = struct{}{}
	}

	c.items = items
	return nil
}

// Encode serializes the cart the way it is persisted.
func Encode(c Cart) ([]byte, error) {
	return json.Marshal(c)
}

func Decode(data []byte) (Cart, error) {
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, err
	}
	return c, nil
}
