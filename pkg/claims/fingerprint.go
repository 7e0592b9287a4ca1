// Package claims implements the Claim-Graph Builder (§4.5): a pure
// function folding characters and events into attributed Claim records.
package claims

import (
	"fmt"
	"hash/fnv"

	"github.com/kittclouds/bce/pkg/model"
)

// fingerprint derives a deterministic claim_id from the fields §4.5
// names: subject, predicate, source and the object's rendering. FNV-1a
// (stdlib hash/fnv) is used rather than a third-party hashing library:
// claim_id only needs to be a stable, non-cryptographic fingerprint over
// a small per-entity claim set, and no example in the reference corpus
// pulls in a dedicated hashing dependency for this kind of identity
// fingerprint.
func fingerprint(subject model.EntityId, predicate string, source model.SourceId, object model.ClaimValue) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s||%s||%s||%s", subject, predicate, source, object.String())
	return fmt.Sprintf("%016x", h.Sum64())
}
