package badger

import (
	"fmt"

	"github.com/poiesic/scout/core"
)

// Key prefixes for different data types
const (
	vectorRecordPrefix  = "vecrec"
	profileRecordPrefix = "prorec"
)

// makeVectorKey generates a key for a vector record within a namespace.
// Format: prefix:namespace:id
func makeVectorKey(namespace, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", vectorRecordPrefix, namespace, id))
}

// makeNamespacePrefix generates the scan prefix for all records in a namespace.
func makeNamespacePrefix(namespace string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", vectorRecordPrefix, namespace))
}

// makeProfileKey generates a key for a profile by actor ID.
func makeProfileKey(actorID core.ActorID) []byte {
	return []byte(fmt.Sprintf("%s:%s", profileRecordPrefix, actorID))
}

// profilePrefix is the scan prefix for all profile records.
func profilePrefix() []byte {
	return []byte(profileRecordPrefix + ":")
}
