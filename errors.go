package flif

import "errors"

// ErrFormat reports a malformed or unrecognized bitstream (bad magic,
// unknown transform name, geometry or bit depth outside the admitted
// range).
var ErrFormat = errors.New("flif: format error")

// ErrCapacity reports that an image's effective residual bit budget
// exceeds what the symbol coder can address. Encode performs no
// residual-budget check and does not return it.
var ErrCapacity = errors.New("flif: residual range exceeds coder capacity")

// ErrChecksumMismatch reports that the stored checksum did not match the
// checksum recomputed over the decoded image. Decode still returns the
// reconstructed image alongside this error; callers may use
// errors.Is to detect it and decide whether to trust the result.
var ErrChecksumMismatch = errors.New("flif: checksum mismatch")
