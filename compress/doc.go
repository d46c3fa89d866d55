// Package compress provides the body codecs used for HTTP content coding of
// GalacticBuf messages.
//
// Compression never touches the wire format itself. A message is serialized
// first and the complete byte string is then passed through one of the codecs
// below, selected by the Content-Encoding or Accept-Encoding header:
//
//	identity  format.CompressionNone  NoOpCompressor
//	zstd      format.CompressionZstd  ZstdCompressor (klauspost/compress)
//	s2        format.CompressionS2    S2Compressor (klauspost/compress)
//	lz4       format.CompressionLZ4   LZ4Compressor (pierrec/lz4, block format)
//
// All codecs are stateless values and safe for concurrent use. Decompression
// output is capped at MaxDecompressedSize.
//
// # Usage
//
//	ct, codec, err := compress.ForContentEncoding(req.Header.Get("Content-Encoding"))
//	if err != nil {
//	    return err // wraps errs.ErrUnsupportedEncoding
//	}
//	body, err := codec.Decompress(raw)
//
//	respType := compress.Negotiate(req.Header.Get("Accept-Encoding"), format.CompressionNone)
package compress
