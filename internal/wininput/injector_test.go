package wininput

import "testing"

// TestParseButton_Aliases verifies the names accepted for each button.
func TestParseButton_Aliases(t *testing.T) {
	for _, name := range []string{"", "default", "Left", "Mouse Button Left"} {
		b, err := ParseButton(name)
		if err != nil || b != ButtonLeft {
			t.Fatalf("expected left for %q, got %v err=%v", name, b, err)
		}
	}
	for _, name := range []string{"right", " RIGHT ", "mouse button right"} {
		b, err := ParseButton(name)
		if err != nil || b != ButtonRight {
			t.Fatalf("expected right for %q, got %v err=%v", name, b, err)
		}
	}
}

// TestParseButton_Unknown verifies unknown names are rejected.
func TestParseButton_Unknown(t *testing.T) {
	if _, err := ParseButton("middle"); err == nil {
		t.Fatalf("expected error for middle button")
	}
}

// TestButton_TextRoundTrip verifies text encoding uses the button name.
func TestButton_TextRoundTrip(t *testing.T) {
	text, err := ButtonRight.MarshalText()
	if err != nil || string(text) != "right" {
		t.Fatalf("unexpected marshal result %q err=%v", text, err)
	}
	var b Button
	if err := b.UnmarshalText([]byte("left")); err != nil || b != ButtonLeft {
		t.Fatalf("unexpected unmarshal result %v err=%v", b, err)
	}
	if _, err := Button(7).MarshalText(); err == nil {
		t.Fatalf("expected error for unknown button")
	}
}
