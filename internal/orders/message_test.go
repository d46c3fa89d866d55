package orders

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/galacticbuf/encoding"
	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/format"
	"github.com/arloliu/galacticbuf/value"
)

func TestToObject_FieldOrder(t *testing.T) {
	obj := ToObject(Order{ID: "o1", Price: 42, Quantity: 3, DeliveryStart: 100, DeliveryEnd: 200})
	require.Equal(t,
		[]string{"order_id", "price", "quantity", "delivery_start", "delivery_end"},
		obj.Names())

	got, err := FromObject(obj)
	require.NoError(t, err)
	require.Equal(t, Order{ID: "o1", Price: 42, Quantity: 3, DeliveryStart: 100, DeliveryEnd: 200}, got)
}

func TestFromObject_Missing(t *testing.T) {
	full := ToObject(Order{ID: "o1", Price: 1, Quantity: 1, DeliveryStart: 1, DeliveryEnd: 2})

	for i, f := range full.Fields {
		t.Run("without "+f.Name, func(t *testing.T) {
			fields := append(append([]value.Field{}, full.Fields[:i]...), full.Fields[i+1:]...)
			_, err := FromObject(value.NewObject(fields...))
			require.ErrorIs(t, err, errs.ErrMissingField)
		})
	}

	_, err := FromObject(value.NewObject(
		value.F("order_id", value.NewStr("o1")),
		value.F("price", value.NewStr("100")),
		value.F("quantity", value.NewInt(1)),
		value.F("delivery_start", value.NewInt(1)),
		value.F("delivery_end", value.NewInt(2)),
	))
	require.ErrorIs(t, err, errs.ErrMissingField, "price as string")
}

func TestListMessage_Wire(t *testing.T) {
	empty := ListMessage(nil)
	list, ok := empty.GetList("orders")
	require.True(t, ok)
	require.Equal(t, format.TagObject, list.ElemType)
	require.Zero(t, list.Len())

	data, err := encoding.SerializeMessage(empty)
	require.NoError(t, err)
	// header, "orders", List tag, Object element tag, zero count
	require.Equal(t, []byte{
		0x01, 0x01, 0x00, 0x0F,
		0x06, 'o', 'r', 'd', 'e', 'r', 's',
		0x03, 0x04, 0x00, 0x00,
	}, data)

	orders := []Order{
		{ID: "a", Price: 10, Quantity: 1, DeliveryStart: 5, DeliveryEnd: 6},
		{ID: "b", Price: 20, Quantity: 2, DeliveryStart: 5, DeliveryEnd: 6},
	}
	data, err = encoding.SerializeMessage(ListMessage(orders))
	require.NoError(t, err)

	decoded, err := encoding.ParseMessage(data)
	require.NoError(t, err)

	back, err := FromListMessage(decoded)
	require.NoError(t, err)
	require.Equal(t, orders, back)
}

func TestFromListMessage_Errors(t *testing.T) {
	_, err := FromListMessage(value.NewObject())
	require.ErrorIs(t, err, errs.ErrMissingField)

	_, err = FromListMessage(value.NewObject(value.F("orders", value.NewList(format.TagInt, value.NewInt(1)))))
	require.ErrorIs(t, err, errs.ErrMissingField)

	_, err = FromListMessage(value.NewObject(value.F("orders",
		value.NewList(format.TagObject, value.NewObject(value.F("order_id", value.NewStr("a")))))))
	require.ErrorIs(t, err, errs.ErrMissingField)
}
