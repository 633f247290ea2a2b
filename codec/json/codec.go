package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/teenjuna/constvec/codec"
)

var _ codec.Codec[any] = (*Codec[any])(nil)

// Codec encodes items as a JSON array.
//
// The array is decoded element by element: decoding stops at the first item the receiver refuses,
// and the rest of the input is never parsed.
type Codec[Item any] struct {
	buf bytes.Buffer
}

func New[Item any]() *Codec[Item] {
	return &Codec[Item]{}
}

func (c *Codec[Item]) Encode(items iter.Seq[Item]) ([]byte, error) {
	c.buf.Reset()
	c.buf.WriteByte('[')

	i := 0
	for item := range items {
		if i > 0 {
			c.buf.WriteByte(',')
		}
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		c.buf.Write(data)
		i++
	}

	c.buf.WriteString("]\n")

	return bytes.Clone(c.buf.Bytes()), nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item) bool) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	token, err := dec.Token()
	if err != nil {
		return err
	}
	if token != json.Delim('[') {
		return fmt.Errorf("expected array, got %v", token)
	}

	for i := 0; dec.More(); i++ {
		var item Item
		if err := dec.Decode(&item); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if !push(item) {
			return nil
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}

func (c *Codec[Item]) Derive() codec.Codec[Item] {
	return New[Item]()
}
