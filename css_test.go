package mdsanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterStyle(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    string
		dropped int
	}{
		{"color:red;text-align:center;", "text-align:center;", 1},
		{"text-align: center", "text-align: center;", 0},
		{"  TEXT-ALIGN : right ; ", "TEXT-ALIGN : right;", 0},
		{"text-align:/* x */center", "text-align:center;", 0},
		{"background-color: #fff; position: fixed", "background-color: #fff;", 1},
		{"background-color: rgb(0, 0, 0); color: red", "background-color: rgb(0, 0, 0);", 1},
		{`text-align: "a;b"; color: red`, `text-align: "a;b";`, 1},
		{"background-color: url(javascript:alert(1))", "", 1},
		{"background-color: expression(alert(1))", "", 1},
		{"background-color: exp\\72 ession(alert(1))", "", 1},
		{"text-align:center;background-color: rgb(1,2;", "text-align:center;", 1},
		{"background-color: rgb(1,2", "", 1},
		{"background-color: (red; text-align: left", "", 1},
		{"text-align", "", 1},
		{"text-align:", "", 1},
		{":center", "", 1},
		{"", "", 0},
		{";;;", "", 0},
	} {
		got, dropped := Strict.filterStyle(tc.in)
		assert.Equal(t, tc.want, got, "filterStyle(%q)", tc.in)
		assert.Equal(t, tc.dropped, dropped, "filterStyle(%q) dropped", tc.in)
	}
}
