package main

import (
	"bytes"
	"fmt"
	"net"
	"strconv"

	"github.com/klauspost/compress/zlib"
)

// gelfSink sends compressed GELF payloads to a collection endpoint as
// single UDP datagrams. Delivery is fire-and-forget: there is no
// acknowledgment channel and no retry.
type gelfSink struct {
	conn net.Conn
}

func newGELFSink(host string, port int) (*gelfSink, error) {
	conn, err := net.Dial("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("dial %s:%d: %w", host, port, err)
	}
	return &gelfSink{conn: conn}, nil
}

func (s *gelfSink) Send(payload []byte) error {
	_, err := s.conn.Write(payload)
	return err
}

func (s *gelfSink) Close() error {
	return s.conn.Close()
}

// A compressor deflates GELF payloads with zlib, reusing one writer
// across records.
type compressor struct {
	level int
	buf   bytes.Buffer
	zw    *zlib.Writer
}

func newCompressor(level int) *compressor {
	return &compressor{level: level}
}

func (c *compressor) compress(data []byte) ([]byte, error) {
	c.buf.Reset()
	if c.zw == nil {
		zw, err := zlib.NewWriterLevel(&c.buf, c.level)
		if err != nil {
			return nil, err
		}
		c.zw = zw
	} else {
		c.zw.Reset(&c.buf)
	}
	if _, err := c.zw.Write(data); err != nil {
		return nil, err
	}
	if err := c.zw.Close(); err != nil {
		return nil, err
	}
	out := make([]byte, c.buf.Len())
	copy(out, c.buf.Bytes())
	return out, nil
}
