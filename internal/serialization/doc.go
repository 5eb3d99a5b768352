// Package serialization provides the binary primitives of the pocket model format.
//
// A model stream is read strictly sequentially; no field carries its own length, so every
// reader must know how many values it expects:
//
//	Model stream:
//	  [uint32 LE: layer count]
//	  repeated:
//	    [uint32 LE: layer tag]
//	    [layer block]
//
//	Tensor block (rank fixed by the calling layer, not stored):
//	  [rank x uint32 LE: extents, each > 0]
//	  [product(extents) x float32 LE: values]
//
// Layers with a nonlinearity end their block with a uint32 activation tag.
//
// Example usage:
//
//	r, err := serialization.Open("model.pt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	count, err := serialization.ReadUint32(r)
package serialization
