package compress

// ZstdCompressor compresses word streams with Zstandard. The best ratio of
// the available codecs; suited to archival word streams where decompression
// is infrequent.
//
// Two implementations back this type, selected with the zstd_cgo build tag:
// the default pure-Go one (klauspost/compress/zstd) and a cgo one
// (valyala/gozstd) binding the reference library. Both produce standard
// Zstandard frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
