package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestQuotesSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quotes.csv", `Quote,Book,Topic_1_clean,Purpose_clean
"Memories warm you from the inside.",Kafka on the Shore,"memory, warmth",comfort
"I dream. Sometimes I think that's the only right thing to do.",Sputnik Sweetheart,dream,
`)

	src := NewCSVSource(dir, "quotes*.csv", "book_vibes.csv")
	quotes, err := src.Quotes()
	if err != nil {
		t.Fatalf("Quotes failed: %v", err)
	}

	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].Index != 0 || quotes[1].Index != 1 {
		t.Errorf("expected sequential indexes, got %d and %d", quotes[0].Index, quotes[1].Index)
	}
	if quotes[0].Book != "Kafka on the Shore" {
		t.Errorf("unexpected book: %q", quotes[0].Book)
	}
	if quotes[0].Topic != "memory, warmth" {
		t.Errorf("unexpected topic: %q", quotes[0].Topic)
	}
	if quotes[1].Purpose != "" {
		t.Errorf("expected empty purpose, got %q", quotes[1].Purpose)
	}
}

func TestQuotesShardedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quotes_2.csv", "Quote,Book\nsecond,B\n")
	writeFile(t, dir, "quotes_1.csv", "Quote,Book\nfirst,A\n")

	src := NewCSVSource(dir, "quotes*.csv", "book_vibes.csv")
	quotes, err := src.Quotes()
	if err != nil {
		t.Fatal(err)
	}

	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	// Shards concatenate in lexical filename order.
	if quotes[0].Text != "first" || quotes[1].Text != "second" {
		t.Errorf("unexpected shard order: %q, %q", quotes[0].Text, quotes[1].Text)
	}
	if quotes[1].Index != 1 {
		t.Errorf("index not continuous across shards: %d", quotes[1].Index)
	}
}

func TestQuotesMissingFiles(t *testing.T) {
	src := NewCSVSource(t.TempDir(), "quotes*.csv", "book_vibes.csv")
	if _, err := src.Quotes(); err == nil {
		t.Error("expected error when no quote files match")
	}
}

func TestQuotesMissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quotes.csv", "Text,Author\nhello,someone\n")

	src := NewCSVSource(dir, "quotes*.csv", "book_vibes.csv")
	if _, err := src.Quotes(); err == nil {
		t.Error("expected error for missing Quote/Book columns")
	}
}

func TestBookVibes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "book_vibes.csv", `Book,v1,v2,v3
Kafka on the Shore,0.1,0.2,0.3
Norwegian Wood,0.4,0.5,0.6
`)

	src := NewCSVSource(dir, "quotes*.csv", "book_vibes.csv")
	vibes, err := src.BookVibes()
	if err != nil {
		t.Fatalf("BookVibes failed: %v", err)
	}

	if len(vibes) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(vibes))
	}
	if vibes[0][0] != 0.1 || vibes[1][2] != 0.6 {
		t.Errorf("unexpected vibe values: %v", vibes)
	}
}

func TestBookVibesRejectsNonNumeric(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "book_vibes.csv", "Book,v1\nKafka,not-a-number\n")

	src := NewCSVSource(dir, "quotes*.csv", "book_vibes.csv")
	if _, err := src.BookVibes(); err == nil {
		t.Error("expected error for non-numeric descriptor")
	}
}
