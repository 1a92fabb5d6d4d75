package rac

// Dummy is a no-op Writer used during the tree-learning pass: the symbol
// coders run their normal traversal and bit-chance updates against it, but
// no bytes are ever produced. This lets the learn pass share code with the
// real emit pass instead of needing a parallel cost-estimation path.
type Dummy struct{}

func (Dummy) Write16(uint16, bool)     {}
func (Dummy) WriteFrac(int, int, bool) {}
func (Dummy) WriteUniformBit(bool)     {}
