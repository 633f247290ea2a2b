package msgp

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/teenjuna/constvec/codec"
	"github.com/tinylib/msgp/msgp"
)

var _ codec.Codec[msgp.Raw] = (*Codec[msgp.Raw, *msgp.Raw])(nil)

// Codec encodes items as concatenated MessagePack values. Items must have msgp-generated (or
// hand-written) marshaling methods on their pointer type.
type Codec[Item any, ItemPtr msgpable[Item]] struct {
	buf []byte
}

func New[Item any, ItemPtr msgpable[Item]]() *Codec[Item, ItemPtr] {
	return &Codec[Item, ItemPtr]{
		buf: make([]byte, 0),
	}
}

func (c *Codec[Item, ItemPtr]) Encode(items iter.Seq[Item]) ([]byte, error) {
	c.buf = c.buf[:0]
	i := 0
	for item := range items {
		b, err := ItemPtr(&item).MarshalMsg(c.buf)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		c.buf = b
		i++
	}

	return bytes.Clone(c.buf), nil
}

// Decode reads values until data is exhausted or push refuses an item.
func (c *Codec[Item, ItemPtr]) Decode(data []byte, push func(Item) bool) error {
	for i := 0; len(data) != 0; i++ {
		var item Item
		rest, err := ItemPtr(&item).UnmarshalMsg(data)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		data = rest
		if !push(item) {
			return nil
		}
	}

	return nil
}

func (c *Codec[Item, ItemPtr]) Derive() codec.Codec[Item] {
	return New[Item, ItemPtr]()
}

type msgpable[Item any] interface {
	*Item
	msgp.Marshaler
	msgp.Unmarshaler
}
