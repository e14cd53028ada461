package main

import (
	"fmt"
	"testing"
)

func TestStatusLogBounded(t *testing.T) {
	l := NewStatusLog(3)
	for i := 1; i <= 5; i++ {
		l.Push(fmt.Sprintf("action %d", i))
	}

	if l.Len() != 3 {
		t.Fatalf("len: got %d, want 3", l.Len())
	}

	want := []string{"action 3", "action 4", "action 5"}
	got := l.Tail(10)
	if len(got) != len(want) {
		t.Fatalf("tail: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("tail[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStatusLogTail(t *testing.T) {
	l := NewStatusLog(10)
	l.Push("first")
	l.Push("second")
	l.Push("third")

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"subset keeps insertion order", 2, []string{"second", "third"}},
		{"n larger than log", 5, []string{"first", "second", "third"}},
		{"zero", 0, nil},
		{"negative", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Tail(tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("tail[%d]: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStatusLogLast(t *testing.T) {
	l := NewStatusLog(5)
	if l.Last() != "" {
		t.Errorf("empty log Last: got %q, want empty", l.Last())
	}

	l.Pushf("opened %s", "docs")
	if l.Last() != "opened docs" {
		t.Errorf("got %q, want %q", l.Last(), "opened docs")
	}
}

func TestStatusLogIgnoresEmpty(t *testing.T) {
	l := NewStatusLog(5)
	l.Push("")
	if l.Len() != 0 {
		t.Errorf("len after empty push: got %d, want 0", l.Len())
	}
}

func TestStatusLogDefaultCapacity(t *testing.T) {
	l := NewStatusLog(0)
	for i := 0; i < defaultStatusCapacity+5; i++ {
		l.Push(fmt.Sprintf("a%d", i))
	}
	if l.Len() != defaultStatusCapacity {
		t.Errorf("len: got %d, want %d", l.Len(), defaultStatusCapacity)
	}
}

func TestStatusLogLastKeyAndCommand(t *testing.T) {
	l := NewStatusLog(5)
	if l.LastKeyseq() != "" || l.LastCommand() != "" {
		t.Fatal("expected empty key and command initially")
	}

	l.SetLastKeyseq("ctrl+p")
	l.SetLastCommand("app.palette")

	if l.LastKeyseq() != "ctrl+p" {
		t.Errorf("keyseq: got %q", l.LastKeyseq())
	}
	if l.LastCommand() != "app.palette" {
		t.Errorf("command: got %q", l.LastCommand())
	}
}
