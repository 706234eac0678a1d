package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rcanales/gsfdeck/internal/domain"
	"go.uber.org/zap"
)

// Catalog is the ordered listing of the current directory: sub-directories
// and playable files, directories first, alphabetical within each group.
// The selection index is clamped after every mutation and the scroll offset
// stays within [0, max(0, len-visible)].
type Catalog struct {
	logger  *zap.Logger
	root    string
	path    string
	ext     string
	visible int

	entries  []domain.Entry
	selected int
	scroll   int
}

// New creates a catalog rooted at root and loads the initial listing.
// ext is the playable-file extension, matched case-insensitively.
func New(logger *zap.Logger, root, ext string, visibleRows int) *Catalog {
	c := &Catalog{
		logger:  logger,
		root:    root,
		path:    root,
		ext:     ext,
		visible: visibleRows,
	}
	c.Reload()
	return c
}

// Reload discards the working list and rebuilds it from the current
// directory, resetting selection and scroll. An unreadable directory
// yields an empty catalog; this is deliberate non-fatal policy.
func (c *Catalog) Reload() {
	c.entries = c.list(c.path)
	c.selected = 0
	c.scroll = 0
	c.clamp()
}

func (c *Catalog) list(path string) []domain.Entry {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		c.logger.Warn("Cannot open directory, catalog left empty",
			zap.String("path", path),
			zap.Error(err))
		return nil
	}

	var entries []domain.Entry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || c.IsPlayable(name) {
			entries = append(entries, domain.Entry{Name: name, IsDir: de.IsDir()})
		}
	}

	// Directories first, alphabetical within each group. Next/previous
	// navigation and loop-all advancement rely on this order being stable.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})

	c.logger.Debug("Directory listed",
		zap.String("path", path),
		zap.Int("entries", len(entries)))
	return entries
}

// IsPlayable reports whether name carries the supported track extension
func (c *Catalog) IsPlayable(name string) bool {
	return strings.EqualFold(filepath.Ext(name), c.ext)
}

// Len returns the number of entries in the current listing
func (c *Catalog) Len() int { return len(c.entries) }

// Path returns the current directory
func (c *Catalog) Path() string { return c.path }

// Entries returns a copy of the current listing
func (c *Catalog) Entries() []domain.Entry {
	out := make([]domain.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Selected returns the current selection index
func (c *Catalog) Selected() int { return c.selected }

// Scroll returns the first visible row of the presentation window
func (c *Catalog) Scroll() int { return c.scroll }

// SelectedEntry returns the highlighted entry, or false when the listing
// is empty
func (c *Catalog) SelectedEntry() (domain.Entry, bool) {
	if len(c.entries) == 0 {
		return domain.Entry{}, false
	}
	return c.entries[c.selected], true
}

// SelectedPath returns the full path of the highlighted entry
func (c *Catalog) SelectedPath() string {
	e, ok := c.SelectedEntry()
	if !ok {
		return ""
	}
	return filepath.Join(c.path, e.Name)
}

// Select moves the selection to index i, clamped to the listing bounds
func (c *Catalog) Select(i int) {
	c.selected = i
	c.clamp()
}

// MoveUp moves the selection up one row, without wrapping
func (c *Catalog) MoveUp() { c.Select(c.selected - 1) }

// MoveDown moves the selection down one row, without wrapping
func (c *Catalog) MoveDown() { c.Select(c.selected + 1) }

// Page jumps the selection by n rows (negative for backwards), clamped
func (c *Catalog) Page(n int) { c.Select(c.selected + n) }

// AdjacentTrack steps circularly from current in the requested direction
// until it lands on a playable file, skipping directories. When the
// catalog holds no playable file anywhere, current is returned unchanged;
// a full circular pass back to current bounds the walk at len steps.
func (c *Catalog) AdjacentTrack(current int, forward bool) int {
	size := len(c.entries)
	if size == 0 {
		return current
	}
	idx := current
	for {
		if forward {
			idx = (idx + 1) % size
		} else {
			idx = (idx - 1 + size) % size
		}
		if idx == current {
			return current
		}
		if !c.entries[idx].IsDir && c.IsPlayable(c.entries[idx].Name) {
			return idx
		}
	}
}

// JumpAdjacent moves the selection to the adjacent playable track.
// It reports whether the selection changed.
func (c *Catalog) JumpAdjacent(forward bool) bool {
	next := c.AdjacentTrack(c.selected, forward)
	if next == c.selected {
		return false
	}
	c.Select(next)
	return true
}

// Enter descends into the highlighted directory and relists.
// It reports whether a descent happened.
func (c *Catalog) Enter() bool {
	e, ok := c.SelectedEntry()
	if !ok || !e.IsDir {
		return false
	}
	c.path = filepath.Join(c.path, e.Name)
	c.Reload()
	return true
}

// Back ascends to the parent directory and relists. The configured root
// is a fixed floor; at the root nothing changes. It reports whether an
// ascent happened.
func (c *Catalog) Back() bool {
	if c.path == c.root {
		return false
	}
	parent := filepath.Dir(c.path)
	if !strings.HasPrefix(parent, c.root) {
		parent = c.root
	}
	c.path = parent
	c.Reload()
	return true
}

// clamp restores the selection and scroll invariants after any mutation.
// The scroll window keeps the selection centered where possible, as the
// presentation expects.
func (c *Catalog) clamp() {
	total := len(c.entries)
	if total == 0 {
		c.selected = 0
		c.scroll = 0
		return
	}
	if c.selected < 0 {
		c.selected = 0
	}
	if c.selected > total-1 {
		c.selected = total - 1
	}

	half := c.visible / 2
	switch {
	case c.selected <= half:
		c.scroll = 0
	case c.selected >= total-half:
		c.scroll = total - c.visible
	default:
		c.scroll = c.selected - half
	}
	if c.scroll < 0 {
		c.scroll = 0
	}
}
