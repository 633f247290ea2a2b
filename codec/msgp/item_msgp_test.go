package msgp_test

import (
	"github.com/tinylib/msgp/msgp"
)

// Item is encoded as a fixed-size MessagePack array. The methods below are what
// `msgp -tuple` would generate for it, trimmed to the marshaling pair.
type Item struct {
	ID string
	N1 int
	N2 float64
}

func (z *Item) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	o = msgp.AppendArrayHeader(o, 3)
	o = msgp.AppendString(o, z.ID)
	o = msgp.AppendInt(o, z.N1)
	o = msgp.AppendFloat64(o, z.N2)
	return
}

func (z *Item) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var n uint32
	n, bts, err = msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		return
	}
	if n != 3 {
		err = msgp.ArrayError{Wanted: 3, Got: n}
		return
	}
	z.ID, bts, err = msgp.ReadStringBytes(bts)
	if err != nil {
		return
	}
	z.N1, bts, err = msgp.ReadIntBytes(bts)
	if err != nil {
		return
	}
	z.N2, bts, err = msgp.ReadFloat64Bytes(bts)
	if err != nil {
		return
	}
	o = bts
	return
}

func (z *Item) Msgsize() int {
	return msgp.ArrayHeaderSize + msgp.StringPrefixSize + len(z.ID) + msgp.IntSize + msgp.Float64Size
}
