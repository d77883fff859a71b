package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ByLCY/slip/binding"
	"github.com/ByLCY/slip/markup"
)

// 固定列宽：名称 14 + 数量 3 + 金额 9 = 26 列，与分隔线等宽。
const (
	NameWidth  = 14
	QtyWidth   = 3
	PriceWidth = 9
	RowWidth   = NameWidth + QtyWidth + PriceWidth

	// 数量或金额超宽时名称列让出宽度，但至少保留这么多列。
	MinNameWidth = 6

	Separator       = "--------------------------"
	Placeholder     = "—"
	AmountFallback  = "0.00"
	TruncationMark  = "."
	EndMarker       = "."
	StandardVariant = "Standard"
	DateLayout      = "02.01.2006 15:04:05"
)

// Generator builds the header, body and footer sequences for an order.
type Generator struct {
	template *Template
	vars     map[string]string
	logger   *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used to report placeholder substitutions.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithTemplate replaces the default branding.
func WithTemplate(t *Template) Option {
	return func(g *Generator) {
		if t != nil {
			g.template = t
		}
	}
}

// WithVars adds values for ${name} placeholders; they override the template's vars.
func WithVars(vars map[string]string) Option {
	return func(g *Generator) {
		for k, v := range vars {
			g.vars[k] = v
		}
	}
}

// NewGenerator creates a generator with the default template.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		template: DefaultTemplate(),
		vars:     map[string]string{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = NewGenerator()

// Generate builds the sections with the default generator.
func Generate(order Order) markup.Sections {
	return defaultGenerator.Generate(order)
}

// Generate never fails: missing or malformed fields are replaced by placeholders.
func (g *Generator) Generate(order Order) markup.Sections {
	f := &fields{order: order, logger: g.logger.With(zap.String("order_id", order.ID))}
	vars := g.bindings(f)

	return markup.Sections{
		Header: g.header(f, vars),
		Body:   g.body(f),
		Footer: g.footer(vars),
	}
}

func (g *Generator) header(f *fields, vars binding.Vars) markup.Sequence {
	var s markup.Sequence
	s = g.branding(s, g.template.Header, vars)
	s = s.Append(markup.Center, markup.Normal, Separator)
	s = s.Append(markup.Left, markup.Normal, "Name: "+f.customer())
	if mobile := strings.TrimSpace(f.order.Mobile); mobile != "" {
		s = s.Append(markup.Left, markup.Normal, "Mobile: "+mobile)
	}
	s = s.Append(markup.Center, markup.Normal, "")
	s = s.Append(markup.Left, markup.Normal, "Order No: "+f.id())
	s = s.Append(markup.Left, markup.Normal, "Date: "+f.date())
	s = s.Append(markup.Center, markup.Normal, Separator)
	return s
}

func (g *Generator) body(f *fields) markup.Sequence {
	var s markup.Sequence
	s = s.Append(markup.Left, markup.EmphasisMedium, FormatRow("Item", "Qty", "Price"))
	s = s.Append(markup.Center, markup.Normal, Separator)
	for i, item := range f.order.Items {
		s = s.Append(markup.Left, markup.Normal, f.itemRow(i, item))
	}
	s = s.Append(markup.Center, markup.Normal, Separator)
	s = s.Append(markup.Right, markup.BoldLarge, "TOTAL: "+f.amount("total", f.order.Total))
	s = s.Append(markup.Center, markup.Normal, Separator)
	return s
}

func (g *Generator) footer(vars binding.Vars) markup.Sequence {
	var s markup.Sequence
	s = g.branding(s, g.template.Footer, vars)
	s = s.Append(markup.Center, markup.Normal, "")
	s = s.Append(markup.Center, markup.Normal, EndMarker)
	return s
}

func (g *Generator) branding(s markup.Sequence, lines []TemplateLine, vars binding.Vars) markup.Sequence {
	for _, l := range lines {
		if missing := binding.Unresolved(l.Text, vars); len(missing) > 0 {
			g.logger.Warn("模板占位符未解析", zap.String("text", l.Text), zap.Strings("paths", missing))
		}
		s = s.Append(l.Align, l.Style, binding.Interpolate(l.Text, vars))
	}
	return s
}

// bindings exposes template vars, configured vars and the order fields to placeholders.
func (g *Generator) bindings(f *fields) binding.Vars {
	vars := binding.Vars{}
	for k, v := range g.template.Vars {
		vars.Set(k, v)
	}
	for k, v := range g.vars {
		vars.Set(k, v)
	}
	vars.Set("customer", strings.TrimSpace(f.order.Customer))
	vars.Set("mobile", strings.TrimSpace(f.order.Mobile))
	vars.Set("order.id", strings.TrimSpace(f.order.ID))
	if total, ok := f.order.Total.Format(); ok {
		vars.Set("order.total", total)
	}
	return vars
}

// fields formats order values and logs every substitution.
type fields struct {
	order  Order
	logger *zap.Logger
}

func (f *fields) text(field, value string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	f.logger.Warn("字段缺失，使用占位符", zap.String("field", field))
	return Placeholder
}

func (f *fields) customer() string { return f.text("customer", f.order.Customer) }

func (f *fields) id() string { return f.text("id", f.order.ID) }

func (f *fields) date() string {
	if f.order.Timestamp.IsZero() {
		f.logger.Warn("字段缺失，使用占位符", zap.String("field", "timestamp"))
		return Placeholder
	}
	return f.order.Timestamp.Format(DateLayout)
}

func (f *fields) amount(field string, a Amount) string {
	s, ok := a.Format()
	if !ok {
		f.logger.Warn("金额无法解析，使用占位符", zap.String("field", field), zap.String("value", string(a)))
		return AmountFallback
	}
	return s
}

func (f *fields) itemRow(index int, item Item) string {
	field := "items[" + strconv.Itoa(index) + "]"
	price := AmountFallback
	if sub, ok := item.Subtotal(); ok {
		price = sub.StringFixed(2)
	} else {
		f.logger.Warn("单价无法解析，小计使用占位符",
			zap.String("field", field+".unitPrice"), zap.String("value", string(item.UnitPrice)))
	}
	name := f.text(field+".name", DisplayName(item))
	return FormatRow(name, "x"+strconv.Itoa(item.Quantity), price)
}

// DisplayName appends " (variant)" unless the variant is empty or the Standard sentinel.
func DisplayName(item Item) string {
	name := strings.TrimSpace(item.Name)
	variant := strings.TrimSpace(item.Variant)
	if variant == "" || strings.EqualFold(variant, StandardVariant) {
		return name
	}
	if name == "" {
		return ""
	}
	return name + " (" + variant + ")"
}

// FormatRow lays out name, quantity and price into the 26-column row.
// A quantity or price wider than its column takes the extra columns from the
// name; when that would leave fewer than MinNameWidth columns, quantity and
// price are truncated to their own widths instead. The row never exceeds RowWidth.
func FormatRow(name, qty, price string) string {
	qw := max(QtyWidth, utf8.RuneCountInString(qty))
	pw := max(PriceWidth, utf8.RuneCountInString(price))
	nw := RowWidth - qw - pw
	if nw < MinNameWidth {
		qty, price = fit(qty, QtyWidth), fit(price, PriceWidth)
		qw, pw, nw = QtyWidth, PriceWidth, NameWidth
	}
	return fit(name, nw) + fmt.Sprintf("%-*s%*s", qw, qty, pw, price)
}

// FitName truncates names longer than NameWidth runes to NameWidth-1 runes plus
// TruncationMark, and right-pads shorter names with spaces.
func FitName(name string) string { return fit(name, NameWidth) }

func fit(s string, width int) string {
	n := utf8.RuneCountInString(s)
	switch {
	case n > width:
		runes := []rune(s)
		return string(runes[:width-1]) + TruncationMark
	case n < width:
		return s + strings.Repeat(" ", width-n)
	default:
		return s
	}
}
