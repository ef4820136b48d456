package container

// Container magic prefixes. All are 8 ASCII bytes.
const (
	MagicUnsigned  = "IWffu100"
	MagicSigned    = "IWff0100"
	MagicStreaming = "IWffs100" // appears inside signed files, after the version
	MagicTA        = "TAff0100"
)

// HashTableSize is the size in bytes of the opaque hash/auth block that
// follows the streaming marker in signed containers. The core copies this
// block verbatim and never regenerates it.
const HashTableSize = 0x100

// blockTerminator0, blockTerminator1 are the two block-length values that
// end a block-compressed stream: length == 0 or 1 means "stop".
const (
	blockTerminator0 = 0
	blockTerminator1 = 1
)

// maxBlockLen is the largest block length the decompressor will accept
// before treating the stream as corrupt.
const maxBlockLen = 128 * 1024

// maxReasonableBlockOutput is the decompressed size of a full block as the
// compressor emits it (one chunkSize chunk). The decompressor does not
// enforce it; a block's output is capped only by maxZoneOutput.
const maxReasonableBlockOutput = 64 * 1024

// chunkSize is the size of each zone chunk emitted during block
// compression.
const chunkSize = 64 * 1024

// signedScanLimit bounds the search for a zlib header in signed or
// dev-build files.
const signedScanLimit = 256 * 1024

// signedScanMinOutput is the minimum decompressed size a candidate zlib
// stream must produce to be accepted during the signed-file scan.
const signedScanMinOutput = 10 * 1024
