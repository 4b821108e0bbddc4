package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/bpowers/tzdb"
	"github.com/bpowers/tzdb/tzif"
)

const (
	nZones       = 400
	prefix       = "Synthetic/"
	nYears       = 40
	secondsYear  = 31556952
	quarterHour  = 900
	maxStdOffset = 14 * 3600
)

var regions = []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel"}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		var seedBytes [8]byte
		if _, err := crand.Read(seedBytes[:]); err != nil {
			panic(err)
		}
		seed = int64(binary.LittleEndian.Uint64(seedBytes[:]))
	}
	return rand.New(rand.NewSource(seed))
}

// abbrev returns a made-up 3 or 4 letter abbreviation.
func abbrev(rng *rand.Rand) string {
	n := 3 + rng.Intn(2)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('A' + rng.Intn(26))
	}
	return string(b)
}

// zone returns a record alternating between a standard and (sometimes) a
// daylight type every half year.
func zone(rng *rand.Rand, id string) *tzif.Record {
	std := int32(rng.Intn(2*maxStdOffset/quarterHour+1)*quarterHour - maxStdOffset)
	stdAbbrev := abbrev(rng)
	r := &tzif.Record{
		ID:      id,
		Types:   []tzif.Type{{Offset: std, AbbrevIndex: 0}},
		Abbrevs: append([]byte(stdAbbrev), 0),
	}
	if rng.Intn(3) == 0 {
		return r
	}

	r.Types = append(r.Types, tzif.Type{Offset: std + 3600, IsDST: true, AbbrevIndex: uint8(len(r.Abbrevs))})
	r.Abbrevs = append(append(r.Abbrevs, abbrev(rng)...), 0)
	for year := 0; year < nYears; year++ {
		start := int64(year) * secondsYear
		spring := start + int64(60+rng.Intn(30))*86400
		fall := start + int64(240+rng.Intn(60))*86400
		r.Transitions = append(r.Transitions, int32(spring), int32(fall))
		r.TypeIndices = append(r.TypeIndices, 1, 0)
	}
	return r
}

func main() {
	out := flag.String("out", "", "directory to write the database to")
	seed := flag.Int64("seed", 0, "random seed (0 picks one)")
	version := flag.String("version", "9999z", "database version")
	flag.Parse()
	if *out == "" {
		fmt.Fprintln(os.Stderr, "usage: gen-testdata -out dir [-seed n] [-version v]")
		os.Exit(2)
	}

	rng := newRand(*seed)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := os.MkdirAll(*out, 0o755); err != nil {
		panic(err)
	}
	b, err := tzdb.NewBuilder(*out, tzdb.WithBuilderLogger(logger))
	if err != nil {
		panic(err)
	}
	for i := 0; i < nZones; i++ {
		id := fmt.Sprintf("%s%s/Zone_%03d", prefix, regions[i%len(regions)], i)
		r := zone(rng, id)
		if err := b.PutWithRawOffset(id, tzif.Encode(r), r.Types[0].Offset); err != nil {
			b.Abort()
			panic(err)
		}
	}
	if err := b.Finalize(*version); err != nil {
		panic(err)
	}
}
