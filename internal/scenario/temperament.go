package scenario

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/social"
	"github.com/talgya/apparat/internal/stats"
)

// Temperament field shape. Officials are laid out on a plane of (track,
// rank); each trait is a smooth noise field over that plane, so colleagues
// in the same corner of the apparatus tend to share a temperament.
const (
	fieldOctaves     = 3
	fieldFrequency   = 0.35
	fieldPersistence = 0.5

	traitFloor  = 15 // trait value at noise 0
	traitSpread = 70 // trait value range over noise [0, 1]
	traitJitter = 8  // per-official deviation from the field
)

// temperament holds one noise field per personality trait.
type temperament struct {
	fields [6]opensimplex.Noise
}

func newTemperament(seed int64) temperament {
	var t temperament
	for i := range t.fields {
		t.fields[i] = opensimplex.NewNormalized(seed + int64(i))
	}
	return t
}

// sample draws a personality for an official on track at rank, shifted by
// bias and jittered from src.
func (t temperament) sample(src entropy.Source, track social.Track, rank int, bias characters.Personality) characters.Personality {
	x := float64(track) * 1.7
	y := float64(rank)

	var v [6]int
	b := bias.Traits()
	for i, f := range t.fields {
		n := octaveNoise(f, x, y, fieldOctaves, fieldFrequency, fieldPersistence)
		raw := traitFloor + int(n*traitSpread) + b[i] + entropy.Between(src, -traitJitter, traitJitter)
		v[i] = stats.Clamp(raw, 0, 100)
	}
	return characters.Personality{
		Ambitious: v[0],
		Paranoid:  v[1],
		Ruthless:  v[2],
		Competent: v[3],
		Loyal:     v[4],
		Corrupt:   v[5],
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
