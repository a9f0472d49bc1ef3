// Package certcompress compresses certificate chains for transport inside a
// crypto handshake. A chain is serialized as a list of per-certificate
// entries: certificates the peer already holds are referenced by hash, and
// everything else is deflated with a shared dictionary so the usual X.509
// boilerplate costs almost nothing.
package certcompress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"io"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/crypto/cryptobyte"
)

// CommonCertSets looks up certificates in sets both peers ship, so a chain
// can reference them by set hash and index instead of carrying the bytes.
type CommonCertSets interface {
	// MatchCert reports whether cert appears in one of the sets named by
	// commonSetHashes (a concatenation of little-endian 64-bit set hashes).
	MatchCert(cert, commonSetHashes []byte) (setHash uint64, index uint32, ok bool)

	// GetCert returns the certificate at index in the set with the given
	// hash, or nil if either is unknown.
	GetCert(setHash uint64, index uint32) []byte
}

// Wire layout: one entry per certificate, a zero terminator byte, then, if
// any entry is compressed, a 32-bit little-endian uncompressed size followed
// by a zlib stream of the compressed certificates, each prefixed with its
// own 32-bit little-endian length.
type entryType uint8

const (
	entryCompressed entryType = 1 // certificate bytes follow in the zlib stream
	entryCached     entryType = 2 // peer already holds it; 64-bit hash follows
	entryCommon     entryType = 3 // common set reference; set hash and index follow
)

type entry struct {
	kind    entryType
	hash    uint64 // entryCached
	setHash uint64 // entryCommon
	index   uint32 // entryCommon
}

// Decompressed chains are rejected above this size before inflating.
const maxUncompressedSize = 128 * 1024

// HashCert returns the FNV-1a 64-bit hash used to reference cached
// certificates.
func HashCert(cert []byte) uint64 {
	h := fnv.New64a()
	h.Write(cert)
	return h.Sum64()
}

func matchEntries(chain [][]byte, clientCommonSetHashes, clientCachedCertHashes []byte, commonSets CommonCertSets) []entry {
	entries := make([]entry, 0, len(chain))
	hashesValid := len(clientCachedCertHashes) > 0 && len(clientCachedCertHashes)%8 == 0

	for _, cert := range chain {
		if hashesValid {
			hash := HashCert(cert)
			matched := false
			for rest := clientCachedCertHashes; len(rest) > 0; rest = rest[8:] {
				if binary.LittleEndian.Uint64(rest) == hash {
					entries = append(entries, entry{kind: entryCached, hash: hash})
					matched = true
					break
				}
			}
			if matched {
				continue
			}
		}
		if commonSets != nil && len(clientCommonSetHashes) > 0 {
			if setHash, index, ok := commonSets.MatchCert(cert, clientCommonSetHashes); ok {
				entries = append(entries, entry{kind: entryCommon, setHash: setHash, index: index})
				continue
			}
		}
		entries = append(entries, entry{kind: entryCompressed})
	}
	return entries
}

// zlibDict builds the preset dictionary for a chain: the certificates the
// peer can resolve locally, most recent first, then the shared substrings.
// Both directions derive the identical dictionary from the entry list.
func zlibDict(entries []entry, certs [][]byte) []byte {
	var dict []byte
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].kind != entryCompressed {
			dict = append(dict, certs[i]...)
		}
	}
	return append(dict, commonCertSubstrings...)
}

// CompressChain serializes chain. clientCommonSetHashes names the common
// certificate sets the peer supports and clientCachedCertHashes the 64-bit
// hashes of certificates it already holds; either may be empty. commonSets
// may be nil.
func CompressChain(chain [][]byte, clientCommonSetHashes, clientCachedCertHashes []byte, commonSets CommonCertSets) ([]byte, error) {
	entries := matchEntries(chain, clientCommonSetHashes, clientCachedCertHashes, commonSets)

	var b cryptobyte.Builder
	uncompressedSize := 0
	for i, e := range entries {
		b.AddUint8(uint8(e.kind))
		switch e.kind {
		case entryCompressed:
			uncompressedSize += 4 + len(chain[i])
		case entryCached:
			b.AddBytes(binary.LittleEndian.AppendUint64(nil, e.hash))
		case entryCommon:
			b.AddBytes(binary.LittleEndian.AppendUint64(nil, e.setHash))
			b.AddBytes(binary.LittleEndian.AppendUint32(nil, e.index))
		}
	}
	b.AddUint8(0)
	out, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serializing entries: %w", err)
	}

	if uncompressedSize == 0 {
		return out, nil
	}

	out = binary.LittleEndian.AppendUint32(out, uint32(uncompressedSize))
	var zbuf bytes.Buffer
	zw, err := zlib.NewWriterLevelDict(&zbuf, zlib.BestCompression, zlibDict(entries, chain))
	if err != nil {
		return nil, fmt.Errorf("initializing compressor: %w", err)
	}
	for i, e := range entries {
		if e.kind != entryCompressed {
			continue
		}
		zw.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(chain[i]))))
		zw.Write(chain[i])
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing certificates: %w", err)
	}
	return append(out, zbuf.Bytes()...), nil
}

// DecompressChain reverses CompressChain. cachedCerts holds the certificates
// this side previously advertised by hash; commonSets may be nil if no common
// entry is expected.
func DecompressChain(in []byte, cachedCerts [][]byte, commonSets CommonCertSets) ([][]byte, error) {
	s := cryptobyte.String(in)

	// Entry list and the certificates resolvable without inflating.
	var entries []entry
	var certs [][]byte
	numCompressed := 0
	for {
		var kind uint8
		if !s.ReadUint8(&kind) {
			return nil, errors.New("truncated entry list")
		}
		if kind == 0 {
			break
		}
		e := entry{kind: entryType(kind)}
		switch e.kind {
		case entryCompressed:
			numCompressed++
			certs = append(certs, nil)
		case entryCached:
			var hb []byte
			if !s.ReadBytes(&hb, 8) {
				return nil, errors.New("truncated cached entry")
			}
			e.hash = binary.LittleEndian.Uint64(hb)
			cert := findCachedCert(cachedCerts, e.hash)
			if cert == nil {
				return nil, fmt.Errorf("no cached certificate with hash %#x", e.hash)
			}
			certs = append(certs, cert)
		case entryCommon:
			if commonSets == nil {
				return nil, errors.New("common entry without common certificate sets")
			}
			var hb, ib []byte
			if !s.ReadBytes(&hb, 8) || !s.ReadBytes(&ib, 4) {
				return nil, errors.New("truncated common entry")
			}
			e.setHash = binary.LittleEndian.Uint64(hb)
			e.index = binary.LittleEndian.Uint32(ib)
			cert := commonSets.GetCert(e.setHash, e.index)
			if cert == nil {
				return nil, fmt.Errorf("certificate %d not found in common set %#x", e.index, e.setHash)
			}
			certs = append(certs, cert)
		default:
			return nil, fmt.Errorf("unknown entry type %d", kind)
		}
		entries = append(entries, e)
	}

	if numCompressed > 0 {
		var sb []byte
		if !s.ReadBytes(&sb, 4) {
			return nil, errors.New("truncated uncompressed size")
		}
		uncompressedSize := binary.LittleEndian.Uint32(sb)
		if uncompressedSize > maxUncompressedSize {
			return nil, fmt.Errorf("uncompressed chain too large: %d bytes", uncompressedSize)
		}

		zr, err := zlib.NewReaderDict(bytes.NewReader(s), zlibDict(entries, certs))
		if err != nil {
			return nil, fmt.Errorf("initializing decompressor: %w", err)
		}
		defer zr.Close()
		uncompressed := make([]byte, uncompressedSize)
		if _, err := io.ReadFull(zr, uncompressed); err != nil {
			return nil, fmt.Errorf("inflating certificates: %w", err)
		}

		for i, e := range entries {
			if e.kind != entryCompressed {
				continue
			}
			if len(uncompressed) < 4 {
				return nil, errors.New("truncated certificate length")
			}
			certLen := binary.LittleEndian.Uint32(uncompressed)
			uncompressed = uncompressed[4:]
			if uint32(len(uncompressed)) < certLen {
				return nil, errors.New("truncated certificate")
			}
			certs[i] = uncompressed[:certLen:certLen]
			uncompressed = uncompressed[certLen:]
		}
		if len(uncompressed) != 0 {
			return nil, errors.New("excess uncompressed data")
		}
	}

	return certs, nil
}

func findCachedCert(cachedCerts [][]byte, hash uint64) []byte {
	for _, cert := range cachedCerts {
		if HashCert(cert) == hash {
			return cert
		}
	}
	return nil
}
