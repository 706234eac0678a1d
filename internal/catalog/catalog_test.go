package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

// newTestCatalog builds a temp directory with the given children.
// Names ending in "/" become sub-directories.
func newTestCatalog(t *testing.T, visible int, children ...string) *Catalog {
	t.Helper()
	root := t.TempDir()
	for _, name := range children {
		if len(name) > 0 && name[len(name)-1] == '/' {
			if err := os.Mkdir(filepath.Join(root, name[:len(name)-1]), 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", name, err)
			}
			continue
		}
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return New(zap.NewNop(), root, ".minigsf", visible)
}

func names(c *Catalog) []string {
	var out []string
	for _, e := range c.Entries() {
		n := e.Name
		if e.IsDir {
			n += "/"
		}
		out = append(out, n)
	}
	return out
}

func TestReload_SortOrder(t *testing.T) {
	tests := []struct {
		name     string
		children []string
		want     []string
	}{
		{
			name:     "Directories First Then Files Alphabetical",
			children: []string{"b.minigsf", "A/", "a.minigsf"},
			want:     []string{"A/", "a.minigsf", "b.minigsf"},
		},
		{
			name:     "Non-Playable Files Excluded",
			children: []string{"track.minigsf", "readme.txt", "cover.png", "Z/"},
			want:     []string{"Z/", "track.minigsf"},
		},
		{
			name:     "Extension Match Is Case-Insensitive",
			children: []string{"LOUD.MINIGSF", "quiet.minigsf"},
			want:     []string{"LOUD.MINIGSF", "quiet.minigsf"},
		},
		{
			name:     "Empty Directory",
			children: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCatalog(t, 10, tt.children...)
			got := names(c)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestReload_UnreadableDirectory(t *testing.T) {
	c := New(zap.NewNop(), "/nonexistent/music/root", ".minigsf", 10)
	if c.Len() != 0 {
		t.Errorf("expected empty catalog, got %d entries", c.Len())
	}
	if c.Selected() != 0 {
		t.Errorf("expected selection 0, got %d", c.Selected())
	}
	if _, ok := c.SelectedEntry(); ok {
		t.Error("expected no selected entry in empty catalog")
	}
}

func TestSelectionClamp(t *testing.T) {
	tests := []struct {
		name     string
		children []string
		moves    func(c *Catalog)
		want     int
	}{
		{
			name:     "Up From Top Stays",
			children: []string{"a.minigsf", "b.minigsf"},
			moves:    func(c *Catalog) { c.MoveUp(); c.MoveUp() },
			want:     0,
		},
		{
			name:     "Down Past End Clamps",
			children: []string{"a.minigsf", "b.minigsf", "c.minigsf"},
			moves:    func(c *Catalog) { c.MoveDown(); c.MoveDown(); c.MoveDown(); c.MoveDown() },
			want:     2,
		},
		{
			name:     "Page Forward Clamps",
			children: []string{"a.minigsf", "b.minigsf", "c.minigsf"},
			moves:    func(c *Catalog) { c.Page(10) },
			want:     2,
		},
		{
			name:     "Page Back Clamps",
			children: []string{"a.minigsf", "b.minigsf", "c.minigsf"},
			moves:    func(c *Catalog) { c.Page(10); c.Page(-10) },
			want:     0,
		},
		{
			name:     "Empty Catalog Pins To Zero",
			children: nil,
			moves:    func(c *Catalog) { c.MoveDown(); c.Page(10); c.MoveUp() },
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCatalog(t, 10, tt.children...)
			tt.moves(c)
			if c.Selected() != tt.want {
				t.Errorf("expected selection %d, got %d", tt.want, c.Selected())
			}
			if c.Len() > 0 && (c.Selected() < 0 || c.Selected() >= c.Len()) {
				t.Errorf("selection %d out of bounds [0,%d)", c.Selected(), c.Len())
			}
		})
	}
}

func TestAdjacentTrack(t *testing.T) {
	tests := []struct {
		name     string
		children []string
		from     int
		forward  bool
		want     int
	}{
		{
			// Sorted: A/ B/ → no playable anywhere, input unchanged
			name:     "Zero Playable Files",
			children: []string{"A/", "B/"},
			from:     1,
			forward:  true,
			want:     1,
		},
		{
			// Sorted: A/ a b c
			name:     "Forward Skips Nothing",
			children: []string{"A/", "a.minigsf", "b.minigsf", "c.minigsf"},
			from:     1,
			forward:  true,
			want:     2,
		},
		{
			// Forward from the last track wraps around the directory
			name:     "Forward Wraps Circularly Past Directories",
			children: []string{"A/", "a.minigsf", "b.minigsf"},
			from:     2,
			forward:  true,
			want:     1,
		},
		{
			name:     "Backward From First Wraps To Last",
			children: []string{"A/", "a.minigsf", "b.minigsf"},
			from:     1,
			forward:  false,
			want:     2,
		},
		{
			name:     "Single Track Returns Itself",
			children: []string{"only.minigsf"},
			from:     0,
			forward:  true,
			want:     0,
		},
		{
			name:     "Empty Catalog",
			children: nil,
			from:     0,
			forward:  true,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCatalog(t, 10, tt.children...)
			if got := c.AdjacentTrack(tt.from, tt.forward); got != tt.want {
				t.Errorf("AdjacentTrack(%d, %v): expected %d, got %d",
					tt.from, tt.forward, tt.want, got)
			}
		})
	}
}

func TestJumpAdjacent(t *testing.T) {
	c := newTestCatalog(t, 10, "A/", "a.minigsf", "b.minigsf")

	c.Select(1)
	if !c.JumpAdjacent(true) {
		t.Fatal("expected jump to next track")
	}
	if c.Selected() != 2 {
		t.Errorf("expected selection 2, got %d", c.Selected())
	}

	// Only directories left to skip, wraps back to the other track
	if !c.JumpAdjacent(true) {
		t.Fatal("expected circular jump")
	}
	if c.Selected() != 1 {
		t.Errorf("expected selection 1, got %d", c.Selected())
	}
}

func TestEnterAndBack(t *testing.T) {
	c := newTestCatalog(t, 10, "Castlevania/", "a.minigsf")
	root := c.Path()

	// Write a track inside the sub-directory before descending
	if err := os.WriteFile(filepath.Join(root, "Castlevania", "stage1.minigsf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	c.Reload()

	if !c.Enter() {
		t.Fatal("expected to descend into directory")
	}
	if c.Path() != filepath.Join(root, "Castlevania") {
		t.Errorf("unexpected path %q", c.Path())
	}
	if c.Selected() != 0 {
		t.Errorf("expected selection reset, got %d", c.Selected())
	}
	if got := names(c); len(got) != 1 || got[0] != "stage1.minigsf" {
		t.Errorf("unexpected listing %v", got)
	}

	if !c.Back() {
		t.Fatal("expected to ascend to root")
	}
	if c.Path() != root {
		t.Errorf("expected root %q, got %q", root, c.Path())
	}

	// Root is a floor, not popped further
	if c.Back() {
		t.Error("expected Back at root to be a no-op")
	}
	if c.Path() != root {
		t.Errorf("path changed at root: %q", c.Path())
	}
}

func TestEnterOnFileIsNoop(t *testing.T) {
	c := newTestCatalog(t, 10, "a.minigsf")
	if c.Enter() {
		t.Error("expected Enter on a file to be rejected")
	}
}

func TestScrollWindow(t *testing.T) {
	children := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		children = append(children, string(rune('a'+i))+".minigsf")
	}
	c := newTestCatalog(t, 10, children...)

	tests := []struct {
		name   string
		sel    int
		scroll int
	}{
		{"Near Top", 2, 0},
		{"Middle Centered", 15, 10},
		{"Near Bottom", 28, 20},
		{"Last", 29, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Select(tt.sel)
			if c.Scroll() != tt.scroll {
				t.Errorf("selection %d: expected scroll %d, got %d", tt.sel, tt.scroll, c.Scroll())
			}
			if c.Scroll() < 0 || c.Scroll() > c.Len()-1 {
				t.Errorf("scroll %d out of range", c.Scroll())
			}
		})
	}
}
