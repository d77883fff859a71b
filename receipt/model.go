// Package receipt turns an order summary into the three markup sections of a slip.
package receipt

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Amount is a monetary value kept in its textual form and parsed on demand,
// so that a malformed amount degrades to a placeholder instead of failing decoding.
type Amount string

// NewAmount converts a decimal into an Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount(d.String())
}

// 金额的指数与有效位数上限。超出范围的值按无法解析处理，
// 否则 StringFixed 会展开出上亿位数字。
const (
	maxAmountExponent = 12
	maxAmountDigits   = 24
)

// Decimal parses the amount. ok is false for empty, malformed or out-of-range values.
func (a Amount) Decimal() (d decimal.Decimal, ok bool) {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp < -maxAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, false
	}
	if d.NumDigits() > maxAmountDigits {
		return decimal.Zero, false
	}
	return d, true
}

// Format renders the amount with two decimals; ok is false when the amount does not parse.
func (a Amount) Format() (string, bool) {
	d, ok := a.Decimal()
	if !ok {
		return "", false
	}
	return d.StringFixed(2), true
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(data)
	return nil
}

// MarshalJSON writes parseable amounts as JSON numbers and anything else as a string.
func (a Amount) MarshalJSON() ([]byte, error) {
	if d, ok := a.Decimal(); ok {
		return []byte(d.String()), nil
	}
	return json.Marshal(string(a))
}

// UnmarshalYAML accepts any scalar.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*a = ""
		return nil
	}
	if node.Tag == "!!null" {
		*a = ""
		return nil
	}
	*a = Amount(node.Value)
	return nil
}

// Item is one purchased line.
type Item struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	Variant   string `json:"variant,omitempty" yaml:"variant"`
	UnitPrice Amount `json:"unitPrice" yaml:"unitPrice" validate:"amount"`
	Quantity  int    `json:"quantity" yaml:"quantity" validate:"gte=1"`
}

// Subtotal is quantity × unit price; ok is false when the unit price does not parse.
func (i Item) Subtotal() (decimal.Decimal, bool) {
	price, ok := i.UnitPrice.Decimal()
	if !ok {
		return decimal.Zero, false
	}
	return price.Mul(decimal.NewFromInt(int64(i.Quantity))), true
}

// Order is the order summary handed to the generator. It is read-only.
type Order struct {
	ID        string    `json:"id" yaml:"id" validate:"required"`
	Customer  string    `json:"customer" yaml:"customer" validate:"required"`
	Mobile    string    `json:"mobile,omitempty" yaml:"mobile"`
	Items     []Item    `json:"items" yaml:"items" validate:"dive"`
	Total     Amount    `json:"total" yaml:"total" validate:"amount"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
