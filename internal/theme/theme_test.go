package theme

import "testing"

func TestNextCyclesInOrder(t *testing.T) {
	order := []string{"iced", "anime", "deadpool", "wolverine", "rust", "goblin", "iced"}
	id := order[0]
	for _, want := range order[1:] {
		id = Next(id).ID
		if id != want {
			t.Fatalf("expected %s, got %s", want, id)
		}
	}
}

func TestLookupFallsBackToDefault(t *testing.T) {
	if got := Lookup("missing").ID; got != DefaultID {
		t.Fatalf("expected default theme, got %s", got)
	}
	if got := Lookup("rust").Label; got != "🦀 Rust" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := Next("missing").ID; got != DefaultID {
		t.Fatalf("expected unknown id to restart at default, got %s", got)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].ID = "changed"
	if Lookup(DefaultID).ID != DefaultID {
		t.Fatalf("All must not expose internal slice")
	}
}
