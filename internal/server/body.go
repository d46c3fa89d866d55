package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arloliu/galacticbuf/compress"
	"github.com/arloliu/galacticbuf/encoding"
	"github.com/arloliu/galacticbuf/format"
	"github.com/arloliu/galacticbuf/internal/hash"
	"github.com/arloliu/galacticbuf/internal/observability"
	"github.com/arloliu/galacticbuf/value"
)

// readMessage reads, decompresses and decodes the request body. On failure
// it aborts the request with 415 for an unknown content coding and 400 for
// anything else, and returns false.
func (s *Server) readMessage(c *gin.Context) (value.Object, bool) {
	_, codec, err := compress.ForContentEncoding(c.GetHeader("Content-Encoding"))
	if err != nil {
		s.reject(c, http.StatusUnsupportedMediaType, "decode", err)
		return value.Object{}, false
	}

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, compress.MaxDecompressedSize))
	if err != nil {
		s.reject(c, http.StatusBadRequest, "decode", err)
		return value.Object{}, false
	}

	data, err := codec.Decompress(raw)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "decode", err)
		return value.Object{}, false
	}

	msg, err := s.decoder.Decode(data)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "decode", err)
		return value.Object{}, false
	}

	return msg, true
}

// writeMessage encodes msg and writes it with the negotiated content coding.
func (s *Server) writeMessage(c *gin.Context, status int, msg value.Object) {
	data, err := encoding.SerializeMessage(msg)
	if err != nil {
		s.reject(c, http.StatusInternalServerError, "encode", err)
		return
	}
	s.writeEncoded(c, status, s.negotiate(c), data)
}

func (s *Server) negotiate(c *gin.Context) format.CompressionType {
	return compress.Negotiate(c.GetHeader("Accept-Encoding"), s.cfg.ResponseEncoding)
}

func (s *Server) writeEncoded(c *gin.Context, status int, ct format.CompressionType, data []byte) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		s.reject(c, http.StatusInternalServerError, "encode", err)
		return
	}

	body, err := codec.Compress(data)
	if err != nil {
		s.reject(c, http.StatusInternalServerError, "encode", err)
		return
	}

	c.Header("Vary", "Accept-Encoding")
	if ct.ContentEncoding() != "identity" {
		c.Header("Content-Encoding", ct.ContentEncoding())
	}
	c.Data(status, ContentType, body)
}

// writeCached is writeMessage with an ETag over the message and the
// negotiated content coding. A matching If-None-Match yields 304 without a
// body.
func (s *Server) writeCached(c *gin.Context, msg value.Object) {
	data, err := encoding.SerializeMessage(msg)
	if err != nil {
		s.reject(c, http.StatusInternalServerError, "encode", err)
		return
	}

	ct := s.negotiate(c)
	etag := hash.ETag(data, ct.ContentEncoding())
	c.Header("ETag", etag)
	c.Header("Vary", "Accept-Encoding")
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	s.writeEncoded(c, http.StatusOK, ct, data)
}

// reject aborts with an empty body. The error is kept on the context for the
// request logger and never sent to the client. A non-empty op also counts
// the failure in the codec metrics.
func (s *Server) reject(c *gin.Context, status int, op string, err error) {
	if op != "" {
		observability.RecordCodecFailure(s.cfg.Name, op, err)
	}
	_ = c.Error(err)
	c.AbortWithStatus(status)
}
