package gob

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/teenjuna/constvec/codec"
)

var _ codec.Codec[any] = (*Codec[any])(nil)

// Codec encodes items as a stream of gob values, one value per item. Type information is written
// once, before the first item.
//
// Decoding reads one value at a time, so it stops reading as soon as the receiver refuses an item.
type Codec[Item any] struct {
	buf    bytes.Buffer
	reader bytes.Reader
}

func New[Item any]() *Codec[Item] {
	return &Codec[Item]{}
}

func (c *Codec[Item]) Encode(items iter.Seq[Item]) ([]byte, error) {
	c.buf.Reset()
	enc := gob.NewEncoder(&c.buf)

	i := 0
	for item := range items {
		if err := enc.Encode(&item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		i++
	}

	return bytes.Clone(c.buf.Bytes()), nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item) bool) error {
	c.reader.Reset(data)
	dec := gob.NewDecoder(&c.reader)

	for i := 0; ; i++ {
		var item Item
		err := dec.Decode(&item)
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if !push(item) {
			return nil
		}
	}
}

func (c *Codec[Item]) Derive() codec.Codec[Item] {
	return New[Item]()
}
