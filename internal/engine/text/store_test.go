package text

import "testing"

func TestStoreAddAndSlice(t *testing.T) {
	s := NewStore()
	h := s.Add("hello world\n")
	if got := s.Slice(h, 6, 11); got != "world" {
		t.Errorf("Slice = %q, want %q", got, "world")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStoreEdits(t *testing.T) {
	tests := []struct {
		name string
		edit func(s *Store, h Handle) int
		want string
		n    int
	}{
		{"insert", func(s *Store, h Handle) int { return s.Insert(h, 2, "XY") }, "abXYcd\n", 2},
		{"insert rune", func(s *Store, h Handle) int { return s.InsertChar(h, 0, 'é') }, "éabcd\n", 2},
		{"delete", func(s *Store, h Handle) int { return s.Delete(h, 1, 3) }, "ad\n", 2},
		{"delete char", func(s *Store, h Handle) int { return s.DeleteChar(h, 4) }, "abcd", 1},
		{"delete char at end", func(s *Store, h Handle) int { return s.DeleteChar(h, 5) }, "abcd\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			h := s.Add("abcd\n")
			if n := tt.edit(s, h); n != tt.n {
				t.Errorf("edit returned %d, want %d", n, tt.n)
			}
			if got := s.Rope(h).String(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStoreDeleteMultibyteChar(t *testing.T) {
	s := NewStore()
	h := s.Add("a日b\n")
	if n := s.DeleteChar(h, 1); n != 3 {
		t.Errorf("DeleteChar = %d, want 3", n)
	}
	if got := s.Rope(h).String(); got != "ab\n" {
		t.Errorf("text = %q, want %q", got, "ab\n")
	}
}

func TestStoreRemoveInvalidatesHandle(t *testing.T) {
	s := NewStore()
	h := s.Add("x\n")
	s.Remove(h)
	if s.Contains(h) {
		t.Fatal("handle still live after Remove")
	}
	h2 := s.Add("y\n")
	if h2 == h {
		t.Error("reused slot returned an equal handle")
	}
	defer func() {
		if recover() == nil {
			t.Error("Rope on stale handle did not panic")
		}
	}()
	s.Rope(h)
}
