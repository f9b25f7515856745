package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// TmpDirPrefix is the fixed prefix of fingerprint-scoped temp directories.
// Only directories carrying this prefix are ever garbage collected, so
// unrelated user data under the temp root is never touched.
const TmpDirPrefix = "mason-tmp-"

// Fingerprint computes the content hash of a configuration source. Two
// byte-identical sources always fingerprint identically; any change to the
// content produces a different value. xxhash is sufficient here: the value
// keys cache state, it is not a security boundary.
func Fingerprint(config []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(config))
}

// TmpDirName derives the temp subdirectory name for a fingerprint plus the
// extra digest tokens contributed by registrants. Tokens are joined in
// lexicographic order so the name is independent of registration order.
func TmpDirName(fingerprint string, tokens []string) string {
	if len(tokens) == 0 {
		return TmpDirPrefix + fingerprint
	}
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	slices.Sort(sorted)
	return TmpDirPrefix + fingerprint + "-" + strings.Join(sorted, "-")
}
