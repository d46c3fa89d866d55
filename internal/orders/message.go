package orders

import (
	"fmt"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/format"
	"github.com/arloliu/galacticbuf/value"
)

const (
	FieldOrderID       = "order_id"
	FieldPrice         = "price"
	FieldQuantity      = "quantity"
	FieldDeliveryStart = "delivery_start"
	FieldDeliveryEnd   = "delivery_end"
	FieldOrders        = "orders"
)

// ToObject maps an order to its wire object. Field order is fixed.
func ToObject(o Order) value.Object {
	return value.NewObject(
		value.F(FieldOrderID, value.NewStr(o.ID)),
		value.F(FieldPrice, value.NewInt(o.Price)),
		value.F(FieldQuantity, value.NewInt(o.Quantity)),
		value.F(FieldDeliveryStart, value.NewInt(o.DeliveryStart)),
		value.F(FieldDeliveryEnd, value.NewInt(o.DeliveryEnd)),
	)
}

// ListMessage builds {orders: [obj, ...]}. An empty slice yields an empty
// Object list.
func ListMessage(list []Order) value.Object {
	elems := make([]value.Value, 0, len(list))
	for _, o := range list {
		elems = append(elems, ToObject(o))
	}

	return value.NewObject(value.F(FieldOrders, value.NewList(format.TagObject, elems...)))
}

// FromObject reads an order. Every field must be present with its wire type;
// anything else fails with errs.ErrMissingField.
func FromObject(obj value.Object) (Order, error) {
	var o Order
	var ok bool

	if o.ID, ok = obj.GetString(FieldOrderID); !ok || o.ID == "" {
		return Order{}, fmt.Errorf("%w: %s", errs.ErrMissingField, FieldOrderID)
	}

	ints := []struct {
		name string
		dst  *int64
	}{
		{FieldPrice, &o.Price},
		{FieldQuantity, &o.Quantity},
		{FieldDeliveryStart, &o.DeliveryStart},
		{FieldDeliveryEnd, &o.DeliveryEnd},
	}
	for _, f := range ints {
		if *f.dst, ok = obj.GetInt(f.name); !ok {
			return Order{}, fmt.Errorf("%w: %s", errs.ErrMissingField, f.name)
		}
	}

	return o, nil
}

// FromListMessage reverses ListMessage.
func FromListMessage(msg value.Object) ([]Order, error) {
	list, ok := msg.GetList(FieldOrders)
	if !ok || list.ElemType != format.TagObject {
		return nil, fmt.Errorf("%w: %s", errs.ErrMissingField, FieldOrders)
	}

	out := make([]Order, 0, list.Len())
	for i, el := range list.Elems {
		obj, ok := el.(value.Object)
		if !ok {
			return nil, fmt.Errorf("%w: orders[%d]", errs.ErrListElementTypeMismatch, i)
		}
		o, err := FromObject(obj)
		if err != nil {
			return nil, fmt.Errorf("orders[%d]: %w", i, err)
		}
		out = append(out, o)
	}

	return out, nil
}
