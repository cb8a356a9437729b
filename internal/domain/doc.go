// Package domain contains the core model for sammi: the metabolic network, the
// value objects that shape a map (subgraphs, data overlays, output options) and
// the selection that decides which part of the network is drawn.
//
// The domain does not depend on YAML parsing, net/http, or the filesystem.
// Infra/adapters map into/from these types.
package domain
