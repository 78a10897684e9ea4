// Package types defines the Store and Authenticator contracts, the TodoList
// and Todo entities, and the standard errors shared by every todolists
// backend. Backends live under internal/ and are selected by Config.
package types
