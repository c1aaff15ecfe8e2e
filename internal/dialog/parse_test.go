package dialog

import (
	"errors"
	"testing"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`
name: home/wake-up
advance: ui/confirm
frames:
  - speaker: Kate
    text: |
      Another morning.
  - text: (The bed is still warm.)
    await: home/bed
    raise: home/bed-checked
`)

	d, err := ParseYAML("fallback", data)
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if d.Name != "home/wake-up" {
		t.Errorf("Name = %q, expected %q", d.Name, "home/wake-up")
	}
	if len(d.Frames) != 2 {
		t.Fatalf("got %d frames, expected 2", len(d.Frames))
	}
	if d.Frames[0].Text != "Another morning." {
		t.Errorf("frame text should be trimmed, got %q", d.Frames[0].Text)
	}
	if d.Frames[1].Await != "home/bed" || d.Frames[1].Raise != "home/bed-checked" {
		t.Errorf("frame 1 = %+v", d.Frames[1])
	}
}

func TestParseYAMLUsesFallbackName(t *testing.T) {
	d, err := ParseYAML("intro", []byte("frames:\n  - text: hi\n"))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if d.Name != "intro" {
		t.Errorf("Name = %q, expected %q", d.Name, "intro")
	}
}

func TestParseYAMLErrors(t *testing.T) {
	if _, err := ParseYAML("x", []byte("frames: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if _, err := ParseYAML("x", []byte("name: x\n")); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestParseLua(t *testing.T) {
	src := `
advance("ui/confirm")
say("Kate", "Where did I leave my keys?")
say("Kate", "Maybe by the door.", "home/door")
raise("home/keys-hint")
`
	d, err := ParseLua("home/keys", src)
	if err != nil {
		t.Fatalf("ParseLua() failed: %v", err)
	}
	if d.Name != "home/keys" || d.Advance != "ui/confirm" {
		t.Errorf("dialog = %+v", d)
	}
	if len(d.Frames) != 2 {
		t.Fatalf("got %d frames, expected 2", len(d.Frames))
	}
	last := d.Frames[1]
	if last.Speaker != "Kate" || last.Await != "home/door" || last.Raise != "home/keys-hint" {
		t.Errorf("last frame = %+v", last)
	}
}

func TestParseLuaErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", `say("a", `},
		{"raise before say", `raise("x")`},
		{"no frames", `advance("ui/confirm")`},
		{"missing argument", `say("only speaker")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLua("bad", tt.src); err == nil {
				t.Error("expected error")
			}
		})
	}
}
