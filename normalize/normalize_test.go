package normalize

import (
	"reflect"
	"testing"
)

func TestTerms(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"Hello World", []string{"hello", "world"}},
		{"state-of-the-art", []string{"stateoftheart"}},
		{"Daminozide is a plant growth regulator.", []string{"daminozide", "is", "a", "plant", "growth", "regulator"}},
		{"Policy, policy, policy!", []string{"policy", "policy", "policy"}},
		{"Tom &amp; Jerry", []string{"tom", "jerry"}},
		{"5&bogus;cats", []string{"5boguscats"}},
		{"café latte", []string{"caf", "latte"}},
	}

	for _, c := range cases {
		got := Terms(c.in)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Terms(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTermsOrderPreserved(t *testing.T) {
	got := Terms("zebra apple mango")
	want := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Terms order mismatch: got %v, want %v", got, want)
	}
}

func TestUnknownEntityLeftIntact(t *testing.T) {
	got := Terms("A&foo;B")
	want := []string{"afoob"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
