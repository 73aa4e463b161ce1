package offline

import (
	"bytes"
	"sort"

	"github.com/geoplat/tilecover/internal/cover"
	"github.com/geoplat/tilecover/internal/pmtiles"
)

// Manifest is a PMTiles-shaped directory of a region's cover: a binary
// header plus a Hilbert-ordered entry list, with no tile bytes attached.
// It lets a client resume a bulk tile fetch and know up front how many
// requests it needs to make, without this package ever generating tile
// content itself.
type Manifest struct {
	Header  pmtiles.HeaderV3
	Entries []pmtiles.EntryV3
}

// BuildManifest assembles a Manifest for the canonical tiles a definition
// covers over a zoom range. Entries carry Length=0, RunLength=1: presence
// in the manifest means "fetch this tile", not "here are its bytes".
func BuildManifest(d Definition, tiles []cover.CanonicalTileID) Manifest {
	entries := make([]pmtiles.EntryV3, len(tiles))
	for i, t := range tiles {
		entries[i] = pmtiles.EntryV3{
			TileID:    pmtiles.ZxyToID(t.Z, t.X, t.Y),
			Offset:    0,
			Length:    0,
			RunLength: 1,
		}
	}
	sortEntriesByTileID(entries)

	var minZoom, maxZoom uint8
	if len(tiles) > 0 {
		minZoom, maxZoom = tiles[0].Z, tiles[0].Z
		for _, t := range tiles {
			if t.Z < minZoom {
				minZoom = t.Z
			}
			if t.Z > maxZoom {
				maxZoom = t.Z
			}
		}
	}

	header := pmtiles.HeaderV3{
		SpecVersion:         3,
		TileEntriesCount:    uint64(len(entries)),
		AddressedTilesCount: uint64(len(entries)),
		MinZoom:             minZoom,
		MaxZoom:             maxZoom,
		Clustered:           true,
	}

	return Manifest{Header: header, Entries: entries}
}

// Encode serializes the manifest's header and entry directory, the same
// binary layout a PMTiles v3 archive uses for its root directory, so an
// existing PMTiles reader can inspect a manifest without bespoke code.
func (m Manifest) Encode() []byte {
	dir := pmtiles.SerializeEntries(m.Entries, pmtiles.Gzip)
	header := m.Header
	header.RootLength = uint64(len(dir))
	header.RootOffset = pmtiles.HeaderV3LenBytes
	header.InternalCompression = pmtiles.Gzip

	var out bytes.Buffer
	out.Write(pmtiles.SerializeHeader(header))
	out.Write(dir)
	return out.Bytes()
}

func sortEntriesByTileID(entries []pmtiles.EntryV3) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].TileID < entries[j].TileID })
}
