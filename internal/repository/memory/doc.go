// Package memory provides process-local implementations of the domain
// repositories. Writers of one aggregate key are serialized with a keylock;
// the maps themselves are guarded by an RWMutex. Values are copied in and
// out so callers never share state with the store.
package memory
