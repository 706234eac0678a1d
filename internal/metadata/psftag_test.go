package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

// writeTrack builds a file with a binary prefix and the given tag block
func writeTrack(t *testing.T, body []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.minigsf")
	prefix := []byte{'P', 'S', 'F', 0x22, 0x00, 0x01, 0x02, 0xff, 0xfe}
	if err := os.WriteFile(path, append(prefix, body...), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	r := NewReader(zap.NewNop())

	t.Run("Full Tag Block", func(t *testing.T) {
		path := writeTrack(t, []byte("[TAG]title=Staff Roll\nartist=Koji Kondo\ngame=Zelda\nyear=2004\ncopyright=Nintendo\ngsfby=Ripper\nlength=2:05\n"))
		meta, err := r.Read(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta.Path != path {
			t.Errorf("expected path %q, got %q", path, meta.Path)
		}
		if meta.Title != "Staff Roll" || meta.Artist != "Koji Kondo" || meta.Game != "Zelda" {
			t.Errorf("unexpected fields: %+v", meta)
		}
		if meta.Year != "2004" || meta.Copyright != "Nintendo" || meta.GSFBy != "Ripper" {
			t.Errorf("unexpected fields: %+v", meta)
		}
		if meta.LengthText != "2:05" {
			t.Errorf("expected length 2:05, got %q", meta.LengthText)
		}
	})

	t.Run("First Occurrence Wins", func(t *testing.T) {
		path := writeTrack(t, []byte("[TAG]title=First\ntitle=Second\n"))
		meta, err := r.Read(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta.Title != "First" {
			t.Errorf("expected First, got %q", meta.Title)
		}
	})

	t.Run("Keys Are Case-Insensitive", func(t *testing.T) {
		path := writeTrack(t, []byte("[TAG]Title=Mixed\nLENGTH=30\n"))
		meta, err := r.Read(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta.Title != "Mixed" || meta.LengthText != "30" {
			t.Errorf("unexpected fields: %+v", meta)
		}
	})

	t.Run("CRLF And Padding Trimmed", func(t *testing.T) {
		path := writeTrack(t, []byte("[TAG]title = Padded \r\nartist=A\r\n"))
		meta, err := r.Read(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta.Title != "Padded" || meta.Artist != "A" {
			t.Errorf("unexpected fields: %+v", meta)
		}
	})

	t.Run("Missing Tag Block", func(t *testing.T) {
		path := writeTrack(t, []byte("no tags here"))
		if _, err := r.Read(path); err == nil {
			t.Error("expected error for file without tag block")
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := r.Read("/nonexistent/track.minigsf"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2:05", 125},
		{"0:30", 30},
		{"10:00", 600},
		{"45.500", 45},
		{"90", 90},
		{" 1:00 ", 60},
		{"1:30.500", 90},
		{"", 0},
		{"abc", 0},
		{"2:xx", 0},
		{"-5", 0},
		{"1:-30", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLength(tt.in); got != tt.want {
				t.Errorf("ParseLength(%q): expected %d, got %d", tt.in, tt.want, got)
			}
		})
	}
}
