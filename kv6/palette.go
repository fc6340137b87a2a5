package kv6

import (
	"encoding/binary"
	"fmt"

	binpkg "github.com/robert-malhotra/go-kv6/internal/binary"
)

func readPalette(r *binpkg.Reader) (*Palette, error) {
	if _, err := r.Need(1, PaletteSuffix); err != nil {
		return nil, fmt.Errorf("reading palette: %w", err)
	}
	if err := r.Skip(4); err != nil {
		return nil, fmt.Errorf("reading palette tag: %w", err)
	}

	p := new(Palette)
	for i := range p {
		for c := range p[i] {
			v, err := r.ReadUint8()
			if err != nil {
				return nil, fmt.Errorf("reading palette entry %d: %w", i, err)
			}
			p[i][c] = v
		}
	}
	return p, nil
}

func writePalette(w *binpkg.Writer, p *Palette) {
	w.WriteUint32With(binary.BigEndian, paletteTag)
	for _, rgb := range p {
		w.WriteBytes(rgb[:])
	}
}
