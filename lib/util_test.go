package lib

import "testing"
import "reflect"

func TestParsecsv(t *testing.T) {
	testcases := []struct {
		input string
		ref   []string
	}{
		{"", nil},
		{"handles", []string{"handles"}},
		{"handles, all", []string{"handles", "all"}},
		{" ,self,,\tall\n", []string{"self", "all"}},
		{",", []string{}},
	}
	for _, tcase := range testcases {
		if outs := Parsecsv(tcase.input); !reflect.DeepEqual(tcase.ref, outs) {
			t.Errorf("%q expected %v, got %v", tcase.input, tcase.ref, outs)
		}
	}
}
