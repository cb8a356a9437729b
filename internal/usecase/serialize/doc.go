// Package serialize turns a model and its map settings into the JavaScript
// snippet the SAMMI browser page runs on load.
//
// The output is JavaScript, not strict JSON: missing numbers are written as NaN
// and infinite bounds as Infinity so the page reads them back as numbers.
package serialize
