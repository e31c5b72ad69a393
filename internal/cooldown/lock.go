package cooldown

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// LockName is the stable name of the (user, template) lock that serializes
// cooldown and quota checks with the write that follows them.
func LockName(userID uuid.UUID, templateID int) string {
	return LockKeyPrefix + HashSeparator + userID.String() + HashSeparator + strconv.Itoa(templateID)
}

// LockKey hashes the (user, template) pair to a positive int64 for pg_advisory_xact_lock.
func LockKey(userID uuid.UUID, templateID int) int64 {
	h := sha256.Sum256([]byte(LockName(userID, templateID)))
	// Use first 8 bytes as int64, masking MSB to ensure positive value
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}

// CaseLockName is the in-process lock name for a single case row.
func CaseLockName(caseID uuid.UUID) string {
	return fmt.Sprintf("case%s%s", HashSeparator, caseID)
}

// UserLockName is the in-process lock name for a user row.
func UserLockName(userID uuid.UUID) string {
	return fmt.Sprintf("user%s%s", HashSeparator, userID)
}
