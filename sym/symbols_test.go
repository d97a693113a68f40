package sym

import (
	"testing"
	"unicode/utf8"
)

func TestSymbolToCommandAndCommandToSymbolAreBidirectional(t *testing.T) {
	for symbol, cmd := range SymbolToCommand {
		got, ok := CommandToSymbol[cmd]
		if !ok {
			t.Errorf("SymbolToCommand has %q → %q, but CommandToSymbol has no entry for %q", symbol, cmd, cmd)
			continue
		}
		if got != symbol {
			t.Errorf("bidirectional mismatch: SymbolToCommand[%q] = %q, but CommandToSymbol[%q] = %q", symbol, cmd, cmd, got)
		}
	}
}

func TestMapsHaveSameSize(t *testing.T) {
	if len(SymbolToCommand) != len(CommandToSymbol) {
		t.Errorf("map size mismatch: SymbolToCommand has %d entries, CommandToSymbol has %d",
			len(SymbolToCommand), len(CommandToSymbol))
	}
}

func TestCommandDescriptionsCoversAllCommands(t *testing.T) {
	for cmd := range CommandToSymbol {
		if _, ok := CommandDescriptions[cmd]; !ok {
			t.Errorf("CommandDescriptions missing entry for command %q", cmd)
		}
		if _, ok := CommandLabels[cmd]; !ok {
			t.Errorf("CommandLabels missing entry for command %q", cmd)
		}
	}
}

func TestPaletteOrderContainsValidSymbols(t *testing.T) {
	if len(PaletteOrder) != len(registry) {
		t.Fatalf("PaletteOrder has %d entries, registry has %d", len(PaletteOrder), len(registry))
	}
	for i, symbol := range PaletteOrder {
		if _, ok := SymbolToCommand[symbol]; !ok {
			t.Errorf("PaletteOrder[%d] = %q is not a command glyph", i, symbol)
		}
	}
}

func TestGlyphsAreSingleRune(t *testing.T) {
	for _, symbol := range PaletteOrder {
		if n := utf8.RuneCountInString(symbol); n != 1 {
			t.Errorf("glyph %q has %d runes, want 1", symbol, n)
		}
	}
}

func TestGlyph(t *testing.T) {
	if got := Glyph("s"); got != Speed {
		t.Errorf("Glyph(s) = %q, want %q", got, Speed)
	}
	if got := Glyph("unknown"); got != "" {
		t.Errorf("Glyph(unknown) = %q, want empty", got)
	}
}
