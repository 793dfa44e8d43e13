package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetSkip
)

// Field is one displayable struct field with its current value.
type Field struct {
	Name    string // display label
	Value   interface{}
	Widget  Widget
	Options map[string]string
}

// Option returns a float option such as max, or def when unset or invalid.
func (f Field) Option(key string, def float64) float64 {
	if raw, ok := f.Options[key]; ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return def
}

// ParseTag parses an inspect struct tag of the form
// `inspect:"widget[,key:value...]"`, for example `inspect:"bar,max:9"`,
// `inspect:"label,fmt:%d steps"` or `inspect:"bool,name:Holds cell"`.
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	head, rest, _ := strings.Cut(tag, ",")

	widget := WidgetAuto
	switch strings.TrimSpace(head) {
	case "label":
		widget = WidgetLabel
	case "bar":
		widget = WidgetBar
	case "bool":
		widget = WidgetBool
	case "skip":
		widget = WidgetSkip
	}

	for rest != "" {
		var part string
		part, rest, _ = strings.Cut(rest, ",")
		if k, v, ok := strings.Cut(strings.TrimSpace(part), ":"); ok {
			options[k] = v
		}
	}
	return widget, options
}

// fieldPlan is the parsed tag of one struct field.
type fieldPlan struct {
	index   int
	name    string
	widget  Widget
	options map[string]string
}

// plans caches field plans per struct type; tags never change at run time.
var plans sync.Map // reflect.Type -> []fieldPlan

func planFor(t reflect.Type) []fieldPlan {
	if cached, ok := plans.Load(t); ok {
		return cached.([]fieldPlan)
	}

	var plan []fieldPlan
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		if widget == WidgetAuto {
			widget = WidgetLabel
			if sf.Type.Kind() == reflect.Bool {
				widget = WidgetBool
			}
		}
		name := options["name"]
		if name == "" {
			name = Humanize(sf.Name)
		}
		plan = append(plan, fieldPlan{index: i, name: name, widget: widget, options: options})
	}

	plans.Store(t, plan)
	return plan
}

// ExtractFields lists the displayable fields of a struct or struct pointer.
// Each Field gets its own copy of the options so callers may add to them.
func ExtractFields(value interface{}) []Field {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	plan := planFor(v.Type())
	fields := make([]Field, 0, len(plan))
	for _, p := range plan {
		options := make(map[string]string, len(p.options))
		for k, val := range p.options {
			options[k] = val
		}
		fields = append(fields, Field{
			Name:    p.name,
			Value:   v.Field(p.index).Interface(),
			Widget:  p.widget,
			Options: options,
		})
	}
	return fields
}

// Humanize turns a Go field name into a label: "FoodLevel" becomes
// "Food level".
func Humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatValue renders a value with an optional fmt verb. Floats default to
// two decimals; everything else uses its String method or %v.
func FormatValue(value interface{}, format string) string {
	if format != "" {
		return fmt.Sprintf(format, value)
	}
	switch v := value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", value)
}

// numeric converts integer and float values for bar widgets.
func numeric(value interface{}) (float64, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
