package parser

import "testing"

func TestRLETableRunLengths(t *testing.T) {
	data := []byte("aaaabccccccd")
	rt := NewRLETable(len(data))
	rt.Build(data, 0, len(data))

	cases := []struct {
		pos  int
		want int
	}{
		{0, 4}, {1, 3}, {3, 1}, {4, 1}, {5, 6}, {10, 1}, {11, 1},
	}
	for _, c := range cases {
		if got := rt.At(c.pos); got != c.want {
			t.Errorf("At(%d) = %d, want %d", c.pos, got, c.want)
		}
	}
}

func TestRLETableCapsAt16Bits(t *testing.T) {
	data := make([]byte, 70000)
	rt := NewRLETable(len(data))
	rt.Build(data, 0, len(data))
	if got := rt.At(0); got != 0xFFFF {
		t.Fatalf("At(0) = %d, want %d", got, 0xFFFF)
	}
}
