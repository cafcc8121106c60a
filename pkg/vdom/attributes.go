package vdom

import "strings"

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute. Multiple classes are joined with spaces.
func Class(classes ...string) Attr {
	parts := classes[:0:0]
	for _, c := range classes {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return attr("class", strings.Join(parts, " "))
}

// StyleAttr sets the inline style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the ARIA role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLive sets aria-live.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }

// AriaLabel sets aria-label.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Charset sets the charset attribute.
func Charset(cs string) Attr { return attr("charset", cs) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Content sets the content attribute.
func Content(content string) Attr { return attr("content", content) }

// Disabled sets the boolean disabled attribute.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }
