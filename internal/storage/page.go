package storage

// Page is one PageSize buffer owned by the Pager arena.
type Page struct {
	Data  [PageSize]byte
	dirty bool
}

// Slot returns Data[off : off+size].
func (p *Page) Slot(off, size int) []byte {
	return p.Data[off : off+size]
}

func (p *Page) MarkDirty()    { p.dirty = true }
func (p *Page) IsDirty() bool { return p.dirty }
