// Package polyfill decides which runtime polyfill libraries a program needs
// for its target feature set, injects them, and prunes initializations the
// target already satisfies natively.
package polyfill

import (
	"fmt"
	"strings"
)

// FeatureSet is a monotonic capability set describing a target language
// version. Later versions contain everything earlier ones do, so
// containment is an ordinary ordering over the enumerated tokens.
type FeatureSet uint8

const (
	ES3 FeatureSet = iota
	ES5
	ES2015
	ES2016
	ES2017
	ES2018
	ES2019
	ES2020
	ES2021
	ESNext
)

var featureSetVersions = map[FeatureSet]string{
	ES3:    "es3",
	ES5:    "es5",
	ES2015: "es2015",
	ES2016: "es2016",
	ES2017: "es2017",
	ES2018: "es2018",
	ES2019: "es2019",
	ES2020: "es2020",
	ES2021: "es2021",
	ESNext: "es_next",
}

var featureSetAliases = map[string]FeatureSet{
	"es6": ES2015,
	"es7": ES2016,
	"es8": ES2017,
	"es9": ES2018,
}

// FeatureSetOf parses a version string such as "es5", "ES2019" or "es6".
// Underscores are insignificant and matching is case-insensitive.
func FeatureSetOf(version string) (FeatureSet, error) {
	norm := strings.ToLower(strings.ReplaceAll(version, "_", ""))
	for fs, v := range featureSetVersions {
		if strings.ReplaceAll(v, "_", "") == norm {
			return fs, nil
		}
	}
	if fs, ok := featureSetAliases[norm]; ok {
		return fs, nil
	}
	return ES3, fmt.Errorf("polyfill: unknown feature set %q", version)
}

// Contains reports whether f supports everything in o.
func (f FeatureSet) Contains(o FeatureSet) bool {
	return f >= o
}

// Version returns the canonical version string.
func (f FeatureSet) Version() string {
	if v, ok := featureSetVersions[f]; ok {
		return v
	}
	return "unknown"
}

func (f FeatureSet) String() string { return f.Version() }
