// Package upng implements the decode path of a minimal PNG image reader:
// a PNG chunk scanner, a zlib/DEFLATE decompressor (Huffman trees, LZ77
// back-references, stored blocks), a scanline filter reconstructor, and a
// sub-byte pixel-depth unpacker. It produces an uncompressed, unfiltered
// pixel buffer plus image metadata (dimensions, color type, bit depth).
//
// The package supports:
//   - Color types Luminance, RGB, LuminanceAlpha, RGBA (palette/indexed
//     images are rejected)
//   - Bit depths 1, 2, 4, 8, 16 (as legal per color type)
//   - Non-interlaced (filter method 0, interlace method 0) streams
//
// It deliberately does not support: file loading beyond a thin
// os.ReadFile wrapper, PNG encoding, Adam7 interlacing, palette/tRNS/ICC
// chunks, or CRC-32/Adler-32 checksum verification — the decoder trusts
// the stream but bounds-checks every access so that malformed or
// truncated input always yields an error rather than a crash.
//
// Basic usage:
//
//	img := upng.NewFromBytes(data)
//	if err := img.Decode(); err != nil {
//		// img.Error() holds the stable ErrorCode
//	}
//	pix := img.Buffer()
package upng
