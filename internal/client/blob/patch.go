package blob

type patchOp int

const (
	opUnchanged patchOp = iota
	opReplace
	opRemove
)

// Patch expresses what a write does to an optional attachment. The three
// states are distinct on the wire, so keeping an existing attachment never
// requires re-uploading it and clearing one is not confused with leaving it
// alone.
type Patch struct {
	op  patchOp
	ref *Reference
}

// Unchanged leaves whatever attachment is currently persisted in place.
func Unchanged() Patch {
	return Patch{op: opUnchanged}
}

// Replace installs ref as the new attachment.
func Replace(ref *Reference) Patch {
	if ref == nil {
		return Remove()
	}
	return Patch{op: opReplace, ref: ref}
}

// Remove clears the attachment.
func Remove() Patch {
	return Patch{op: opRemove}
}

func (p Patch) IsUnchanged() bool {
	return p.op == opUnchanged
}

func (p Patch) IsRemove() bool {
	return p.op == opRemove
}

// Ref returns the replacement reference, if this is a replace patch.
func (p Patch) Ref() (*Reference, bool) {
	if p.op != opReplace {
		return nil, false
	}
	return p.ref, true
}
