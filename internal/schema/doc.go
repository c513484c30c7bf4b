// Package schema resolves the database tables and views a project declares.
//
// Provider is the single capability consumed by the audit workflow. The
// RemoteProvider queries the backend's RPC endpoints, the TypesFileProvider
// parses the generated type-declaration file, and FallbackProvider composes
// the two so that any remote failure degrades to the local file.
package schema
