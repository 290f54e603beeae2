// Package tablestore implements the authenticated access layer for the
// Azure Table REST dialect: connection-string parsing, SharedKeyLite
// request signing and a generic per-table HTTP client.
package tablestore

import "strings"

// Connection string keys used by the table service.
const (
	keyAccountName = "AccountName"
	keyAccountKey  = "AccountKey"
)

// Credentials is the account identifier and base64-encoded secret
// extracted from a connection string. Parsed once per client; immutable;
// never persisted.
type Credentials struct {
	AccountName string
	AccountKey  string
}

// ParseConnectionString splits a semicolon-delimited key=value connection
// string into a map. Malformed segments (no '=', empty key or value) are
// silently skipped. Values may themselves contain '=' (base64 padding), so
// only the first '=' separates key from value.
func ParseConnectionString(connString string) map[string]string {
	parts := make(map[string]string)
	for _, segment := range strings.Split(connString, ";") {
		key, value, found := strings.Cut(segment, "=")
		if !found || key == "" || value == "" {
			continue
		}
		parts[key] = value
	}
	return parts
}

// CredentialsFromConnectionString extracts the account credentials from a
// connection string. No validation happens here: a missing or malformed
// AccountKey surfaces later as a signing failure.
func CredentialsFromConnectionString(connString string) Credentials {
	parts := ParseConnectionString(connString)
	return Credentials{
		AccountName: parts[keyAccountName],
		AccountKey:  parts[keyAccountKey],
	}
}
