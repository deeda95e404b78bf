package stats

import (
	"fmt"
	"strings"
)

// CTTerms are the computed tomography terms counted per slide by default.
var CTTerms = []string{
	"ct", "sinogram", "radon", "attenuation", "convolution",
	"fourier", "reconstruction", "artifact", "noise", "dose",
	"projection", "transform", "detector", "collimator", "beam",
}

// ImagingTerms is the broader medical imaging vocabulary.
var ImagingTerms = []string{
	// imaging physics
	"signal", "image", "contrast", "noise", "resolution", "artifact",
	"filter", "sampling", "frequency", "detector", "photon", "attenuation",
	"dose", "scatter", "amplitude", "phase", "modulation",

	// reconstruction and transforms
	"fourier", "transform", "ifft", "fft", "radon", "inverse", "projection",
	"reconstruction", "iterative", "analytic", "backprojection",
	"regularization", "optimization",

	// CT
	"ct", "sinogram", "beam", "collimator", "fan", "cone",

	// MRI
	"mri", "kspace", "k-space", "gradient", "coil", "relaxation",
	"t1", "t2", "precession", "spin", "magnetization", "pulse", "sequence",

	// PET/SPECT
	"pet", "spect", "emission", "annihilation", "radioisotope",
	"coincidence", "decay",

	// ultrasound
	"ultrasound", "transducer", "echo", "beamforming", "acoustic",
	"impedance", "doppler",

	// modality principles
	"tomography", "imaging", "system", "modality", "instrumentation",
}

// KeywordSet is an ordered, de-duplicated list of lowercase terms.
type KeywordSet struct {
	terms []string
	index map[string]struct{}
}

// NewKeywordSet normalizes terms the same way tokens are normalized, so
// "T1." is stored as "t1".
func NewKeywordSet(terms []string) *KeywordSet {
	ks := &KeywordSet{index: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		t = NormalizeTerm(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := ks.index[t]; dup {
			continue
		}
		ks.index[t] = struct{}{}
		ks.terms = append(ks.terms, t)
	}
	return ks
}

// KeywordsFor resolves the configured keyword list. Custom terms win over
// the named built-in set.
func KeywordsFor(set string, custom []string) (*KeywordSet, error) {
	if len(custom) > 0 {
		return NewKeywordSet(custom), nil
	}
	switch set {
	case "", "ct":
		return NewKeywordSet(CTTerms), nil
	case "imaging":
		return NewKeywordSet(ImagingTerms), nil
	default:
		return nil, fmt.Errorf("unknown keyword set %q", set)
	}
}

func (ks *KeywordSet) Terms() []string {
	out := make([]string, len(ks.terms))
	copy(out, ks.terms)
	return out
}

func (ks *KeywordSet) Len() int {
	return len(ks.terms)
}

func (ks *KeywordSet) Contains(term string) bool {
	_, ok := ks.index[term]
	return ok
}

// Count returns a map with an entry for every keyword, matched exactly
// against normalized tokens.
func (ks *KeywordSet) Count(tokens []string) map[string]int {
	counts := make(map[string]int, len(ks.terms))
	for _, t := range ks.terms {
		counts[t] = 0
	}
	for _, tok := range tokens {
		term := NormalizeTerm(tok)
		if _, ok := ks.index[term]; ok {
			counts[term]++
		}
	}
	return counts
}
