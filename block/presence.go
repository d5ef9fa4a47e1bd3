package block

// HasMember reports whether the field at off was part of the record when
// this blob was built.
//
// Record layouts evolve by appending fields, and the record size captured
// at construction time travels with the blob. A reader declaring a newer
// layout can therefore detect that a tail field is absent from an old blob
// before touching it:
//
//	lay := block.NewLayout()
//	aOff := lay.U32()          // present in v1 blobs
//	bOff := lay.U32()          // added in v2
//	if b.HasMember(bOff) {
//	    // safe to read the v2 field
//	}
func (b *Block) HasMember(off uint32) bool {
	return off < b.RecordSize()
}
