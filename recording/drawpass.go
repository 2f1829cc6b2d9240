package recording

import "sort"

// colorHash packs (r, g, b, a) into the color_hash field of the sort key
// (spec §4.3).
func colorHash(c Color) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// sortKey is the 64-bit packed ordering key described by spec §4.3:
//
//	[63:48] clip_group_id | [47:40] op_type | [39:8] color_hash | [7:0] sequence
//
// Grounded on original_source/include/ink/draw_pass.hpp's SortKey::make.
type sortKey struct {
	key     uint64
	opIndex uint32
}

func makeSortKey(clipGroup uint16, t OpType, c Color, seq uint8, idx uint32) sortKey {
	k := uint64(clipGroup) << 48
	k |= uint64(t) << 40
	k |= uint64(colorHash(c)) << 8
	k |= uint64(seq)
	return sortKey{key: k, opIndex: idx}
}

// DrawPass is a stable, deterministic execution order over a [Recording]:
// a pure function of the Recording's ops (spec §5 — "same inputs always
// produce the same sorted_indices").
//
// Sorting is mandatory even when no clipping is used (spec §4.3); the cost
// is a single O(n log n) pass over tiny keys, and batching by type+color
// still reduces backend state changes within the (single, implicit) clip
// group.
type DrawPass struct {
	// SortedIndices are indices into the originating Recording's Ops(),
	// in the order a Backend should execute them.
	SortedIndices []uint32
}

// groupColor is the (clip group, color) pair the per-group sequence
// counter is keyed on; op type is folded into the sort key itself but not
// into the sequence key, since spec §4.3 describes the sequence as a
// tiebreak "within a color batch" — ops of the same color but different
// types still never interleave, because op type outranks color in the key
// layout.
type groupColor struct {
	group uint16
	color uint32
}

// Create builds a DrawPass for r following the algorithm of spec §4.3:
//
//  1. Walk ops in order, assigning each the current clip group id, which
//     is incremented immediately after each SetClip and each ClearClip.
//     A clip op therefore carries the id of the group before it; since
//     clip op types rank after every drawing op type, it sorts last in
//     that group, directly ahead of the ops of the group it opens.
//  2. Form a 64-bit sort key per op from (clip group, op type, color,
//     per-group sequence).
//  3. Sort ascending by key, pairing each with its original op index.
//
// The per-group sequence byte wraps at 256 (spec §4.3, §9 Open Questions).
// It is counted per (clip group, color) across all op types, so once a
// group holds more than 256 ops of one color, ops of that color can lose
// strict insertion order within their type bucket. This is a known,
// accepted limitation, not a bug to silently work around.
func Create(r *Recording) *DrawPass {
	ops := r.Ops()
	keys := make([]sortKey, len(ops))

	var clipGroup uint16
	seq := make(map[groupColor]uint8, 16)

	for i, op := range ops {
		gc := groupColor{group: clipGroup, color: colorHash(op.Color)}
		s := seq[gc]
		keys[i] = makeSortKey(clipGroup, op.Type, op.Color, s, uint32(i))
		seq[gc] = s + 1 // wraps at 256 per uint8 overflow

		if op.Type == OpSetClip || op.Type == OpClearClip {
			clipGroup++
		}
	}

	sort.SliceStable(keys, func(i, j int) bool { return keys[i].key < keys[j].key })

	indices := make([]uint32, len(keys))
	for i, k := range keys {
		indices[i] = k.opIndex
	}
	return &DrawPass{SortedIndices: indices}
}
