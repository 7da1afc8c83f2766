package framegraph

import (
	"testing"
)

func TestHandleEquality(t *testing.T) {
	a := NewHandle[ResourceNode](3)
	b := NewHandle[ResourceNode](3)
	c := NewHandle[ResourceNode](4)

	if a != b {
		t.Errorf("handles with equal index compare unequal")
	}
	if a == c {
		t.Errorf("handles with different index compare equal")
	}
	if a.Index() != 3 {
		t.Errorf("Index() = %d", a.Index())
	}
}

func TestHandleUsableAsMapKey(t *testing.T) {
	m := map[Handle[ResourceNode]]string{
		NewHandle[ResourceNode](0): "zero",
		NewHandle[ResourceNode](1): "one",
	}
	if m[NewHandle[ResourceNode](1)] != "one" {
		t.Errorf("map lookup through a fresh handle failed")
	}
}

func TestRawResourceHandleEquality(t *testing.T) {
	idx := NewHandle[ResourceNode](2)
	a := RawResourceHandle{Index: idx, Version: 1}
	b := RawResourceHandle{Index: idx, Version: 1}
	c := RawResourceHandle{Index: idx, Version: 2}

	if a != b {
		t.Errorf("raw handles with equal fields compare unequal")
	}
	// Same index at a different version is a different point of the
	// write timeline.
	if a == c {
		t.Errorf("raw handles differing in version compare equal")
	}
}
