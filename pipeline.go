package main

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/valyala/fastjson"
)

// A sink accepts one compressed GELF payload per call.
type sink interface {
	Send(payload []byte) error
}

// A transcoder drives the frame assembler over an input stream and
// forwards each record to the sink. Consumption is synchronous and
// records are strictly serialized; a failure on one record never stops
// the stream.
type transcoder struct {
	assembler  *frameAssembler
	sink       sink
	matcher    *matcher
	parsers    fastjson.ParserPool
	compressor *compressor
	sent       int64
}

func newTranscoder(multiline bool, s sink, m *matcher, compressionLevel int) *transcoder {
	return &transcoder{
		assembler:  newFrameAssembler(multiline),
		sink:       s,
		matcher:    m,
		compressor: newCompressor(compressionLevel),
	}
}

// run consumes the stream line by line until it ends. Stream exhaustion
// is normal termination, not an error. Lines are read without a length
// cap: codepoint-array fields can inflate a single record line well past
// any fixed buffer size.
func (t *transcoder) run(r io.Reader) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if block, ok := t.assembler.push(line); ok {
				t.dispatch(block)
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// dispatch parses, maps, compresses and sends one assembled record.
// Every failure is warned about and the record discarded.
func (t *transcoder) dispatch(block string) {
	p := t.parsers.Get()
	defer t.parsers.Put(p)

	v, err := p.Parse(block)
	if err != nil {
		log.Printf("WARN: dropping malformed record: %v", err)
		return
	}

	msg, err := mapRecord(v)
	if err != nil {
		log.Printf("WARN: dropping untranslatable record: %v", err)
		return
	}

	if t.matcher != nil && !t.matcher.matches(msg) {
		if os.Getenv("DEBUG") == "1" {
			log.Printf("record skipped by match expression")
		}
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("WARN: dropping unserializable record: %v", err)
		return
	}

	payload, err := t.compressor.compress(data)
	if err != nil {
		log.Printf("WARN: dropping record, compression failed: %v", err)
		return
	}

	if err := t.sink.Send(payload); err != nil {
		log.Printf("WARN: send failed, record lost: %v", err)
		return
	}
	t.sent++

	if os.Getenv("DEBUG") == "1" {
		log.Printf("forwarded record %d (%d bytes compressed)", t.sent, len(payload))
	}
}
