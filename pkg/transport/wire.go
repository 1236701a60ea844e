// Package transport defines the boundary between the path-operation protocol
// and the machinery that actually performs HTTP round trips.
//
// The protocol core issues exactly one Request per step through an Executor
// and inspects the Response it gets back. Retry policy, connection pooling,
// and request signing all live behind the Executor interface; the default
// HTTPExecutor implementation performs a single net/http round trip per call.
package transport

// Wire header names of the storage service's path operations.
const (
	// HeaderOwner carries the owning user identity of a path.
	HeaderOwner = "x-dls-owner"

	// HeaderGroup carries the owning group identity of a path.
	HeaderGroup = "x-dls-group"

	// HeaderPermissions carries the octal or symbolic permission string.
	HeaderPermissions = "x-dls-permissions"

	// HeaderACL carries the comma-joined access control list.
	HeaderACL = "x-dls-acl"

	// HeaderUmask carries the creation umask applied by the service when
	// the immediate parent has no default ACL.
	HeaderUmask = "x-dls-umask"

	// HeaderRenameSource carries the source path of a rename request.
	HeaderRenameSource = "x-dls-rename-source"

	// HeaderContinuation is the response header carrying the opaque token
	// of a partially completed delete or rename. Absent or empty means the
	// operation is complete.
	HeaderContinuation = "x-dls-continuation"

	// HeaderProperties carries user metadata as comma-separated
	// name=base64(value) pairs.
	HeaderProperties = "x-dls-properties"

	// HeaderResourceType reports whether a path is a file or a directory.
	HeaderResourceType = "x-dls-resource-type"

	// HeaderClientRequestID is the caller-generated correlation ID echoed
	// back in error detail.
	HeaderClientRequestID = "x-dls-client-request-id"

	// HeaderRequestID is the server-generated request ID.
	HeaderRequestID = "x-dls-request-id"

	// HeaderErrorCode is the service error code of a failed request.
	HeaderErrorCode = "x-dls-error-code"

	// Source-side access conditions for rename requests. The unprefixed
	// standard headers condition the destination.
	HeaderSourceIfMatch           = "x-dls-source-if-match"
	HeaderSourceIfNoneMatch       = "x-dls-source-if-none-match"
	HeaderSourceIfModifiedSince   = "x-dls-source-if-modified-since"
	HeaderSourceIfUnmodifiedSince = "x-dls-source-if-unmodified-since"
)

// Wire query parameter names of the storage service's path operations.
const (
	// QueryResource selects the resource kind on create ("file" or
	// "directory").
	QueryResource = "resource"

	// QueryRecursive requests recursive deletion of a directory.
	QueryRecursive = "recursive"

	// QueryContinuation echoes a continuation token back to the service.
	QueryContinuation = "continuation"

	// QueryRenameMode selects the rename semantics ("legacy" or "posix").
	QueryRenameMode = "mode"

	// QueryAction selects the sub-operation of HEAD and PATCH requests
	// ("getAccessControl", "setAccessControl", "setProperties").
	QueryAction = "action"
)
