package handlers

import (
	"fmt"
	"strings"
)

// Banner is a small presentation helper composed into listing handlers.
type Banner struct {
	prop string
}

func NewBanner(prop string) Banner {
	return Banner{prop: prop}
}

// Prop returns the configured text in upper case.
func (b Banner) Prop() string {
	return strings.ToUpper(b.prop)
}

// Upper renders any value as upper-case text.
func (b Banner) Upper(v any) string {
	if s, ok := v.(string); ok {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(fmt.Sprint(v))
}
