package binding

import "testing"

func TestInterpolate(t *testing.T) {
	vars := Vars{"customer": "Alice"}
	vars.Set("order.id", "A-17")
	vars.Set("order.total", "7.00")

	cases := []struct {
		in   string
		data any
		want string
	}{
		{"Hi ${customer}", vars, "Hi Alice"},
		{"${ order.id } / ${order.total}", vars, "A-17 / 7.00"},
		{"${order}", vars, "${order}"},
		{"${missing.path}", vars, "${missing.path}"},
		{"no placeholders", vars, "no placeholders"},
		{"${store}", map[string]any{"store": "Cafe"}, "Cafe"},
		{"${a.b}", map[string]any{"a": map[string]string{"b": "c"}}, "c"},
		{"${customer}", nil, "${customer}"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, c.data); got != c.want {
			t.Fatalf("Interpolate(%q) 期望 %q，实际 %q", c.in, c.want, got)
		}
	}
}

func TestUnresolved(t *testing.T) {
	vars := Vars{"store": "Cafe"}
	got := Unresolved("${store} ${x} ${y} ${x}", vars)
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("未解析占位符应为 [x y]，实际 %v", got)
	}
	if got := Unresolved("${store}", vars); len(got) != 0 {
		t.Fatalf("不应有未解析占位符，实际 %v", got)
	}
}

func TestSetOverwritesLeaf(t *testing.T) {
	vars := Vars{}
	vars.Set("order", "leaf")
	vars.Set("order.id", "1")
	if got := Interpolate("${order.id}", vars); got != "1" {
		t.Fatalf("中间节点应被替换为子树，实际 %q", got)
	}
}
