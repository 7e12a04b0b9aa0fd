package document

import (
	"fmt"

	"github.com/google/uuid"
)

// Ids are name-based UUIDs over the source content hash, so reprocessing
// identical input always yields identical ids.
var idNamespace = uuid.MustParse("b1e7c0de-5d0c-4b1a-9c56-2f8a4e0d7b31")

// DocumentID derives the document id from the source content hash.
func DocumentID(contentHash string) string {
	return uuid.NewSHA1(idNamespace, []byte("doc:"+contentHash)).String()
}

// BlockID derives a block id from the owning document and the block's
// position in detection order.
func BlockID(docID string, ordinal int) string {
	return uuid.NewSHA1(idNamespace, fmt.Appendf(nil, "block:%s:%d", docID, ordinal)).String()
}
