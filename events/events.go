// Package events holds the table that maps markup attribute names to
// framework property names, with the event handler attributes the
// framework knows how to attach.
package events

import "strings"

// EventSignature describes a DOM event handler attribute.
type EventSignature struct {
	Attribute string   // lower-case markup attribute, e.g. "onclick"
	Prop      string   // framework property, e.g. "onClick"
	Event     string   // DOM event name passed to addEventListener, e.g. "click"
	Tags      []string // tags the event is commonly used on; empty means any
}

var signatures = []EventSignature{
	{Attribute: "onclick", Prop: "onClick", Event: "click"},
	{Attribute: "oninput", Prop: "onInput", Event: "input", Tags: []string{"input", "textarea"}},
	{Attribute: "onchange", Prop: "onChange", Event: "change", Tags: []string{"input", "select", "textarea"}},
	{Attribute: "onkeydown", Prop: "onKeyDown", Event: "keydown"},
	{Attribute: "onkeyup", Prop: "onKeyUp", Event: "keyup"},
	{Attribute: "onkeypress", Prop: "onKeyPress", Event: "keypress"},
	{Attribute: "onfocus", Prop: "onFocus", Event: "focus"},
	{Attribute: "onblur", Prop: "onBlur", Event: "blur"},
	{Attribute: "onsubmit", Prop: "onSubmit", Event: "submit", Tags: []string{"form"}},
	{Attribute: "onmousedown", Prop: "onMouseDown", Event: "mousedown"},
	{Attribute: "onmouseup", Prop: "onMouseUp", Event: "mouseup"},
	{Attribute: "onmousemove", Prop: "onMouseMove", Event: "mousemove"},
}

// Plain attributes whose framework property name differs from the markup name.
var attributeProps = map[string]string{
	"class":     "className",
	"for":       "htmlFor",
	"tabindex":  "tabIndex",
	"readonly":  "readOnly",
	"maxlength": "maxLength",
}

// DefaultPropNames returns a fresh copy of the default attribute to property
// table. Keys are lower-case attribute names.
func DefaultPropNames() map[string]string {
	m := make(map[string]string, len(signatures)+len(attributeProps))
	for _, s := range signatures {
		m[s.Attribute] = s.Prop
	}
	for k, v := range attributeProps {
		m[k] = v
	}
	return m
}

var defaultProps = DefaultPropNames()

// PropName maps an attribute name through the default table. Unmapped names
// are returned as given.
func PropName(attr string) string {
	if p, ok := defaultProps[strings.ToLower(attr)]; ok {
		return p
	}
	return attr
}

// AttributeName is the inverse of PropName for the default table.
func AttributeName(prop string) string {
	for attr, p := range defaultProps {
		if p == prop {
			return attr
		}
	}
	return prop
}

// Lookup returns the event signature for a framework property or markup
// attribute name.
func Lookup(name string) (EventSignature, bool) {
	lower := strings.ToLower(name)
	for _, s := range signatures {
		if s.Attribute == lower || s.Prop == name {
			return s, true
		}
	}
	return EventSignature{}, false
}

// IsEventSupported reports whether the event is expected on the given tag.
func IsEventSupported(name, tag string) bool {
	s, ok := Lookup(name)
	if !ok {
		return false
	}
	if len(s.Tags) == 0 {
		return true
	}
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
