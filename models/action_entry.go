package models

// ActionEntry is one row of the action mapper: a token (or certificate)
// together with the permissions configured locally and the permissions the
// server reports for it. The UI edits Configured, Note and the flags, then
// hands the entries back for reconciliation.
type ActionEntry struct {
	// NewHash is the hash of Secret under the current hash algorithm.
	NewHash string `json:"newHash"`
	// OldHash is the hash the entry is currently stored under; empty for
	// tokens that are not in the vault yet.
	OldHash string `json:"oldHash,omitempty"`
	Note    string `json:"note"`
	Secret  []byte `json:"secret"`

	// Configured is the locally configured action set. Advisory only.
	Configured ActionSet `json:"configured"`
	// ServerReported is what the server currently grants the hash. Nil
	// means the server does not report the hash at all, which removes an
	// existing entry on reconciliation; an empty set is a reported hash
	// without named actions.
	ServerReported ActionSet `json:"serverReported"`

	// Locked entries are certificate-backed.
	Locked bool `json:"locked,omitempty"`
	// Update requests that Configured is pushed to the server.
	Update bool `json:"update,omitempty"`
	// Delete requests removal of OldHash on the server and in the vault.
	Delete bool `json:"delete,omitempty"`
}

// ActionMapper indexes entries by NewHash.
type ActionMapper map[string]ActionEntry

// ServerActionOp is the kind of change sent to the server for a hash.
type ServerActionOp string

const (
	ServerActionAdd    ServerActionOp = "add"
	ServerActionUpdate ServerActionOp = "update"
	ServerActionDelete ServerActionOp = "delete"
)

// ServerAction is one element of the mutation "actions" field.
type ServerAction struct {
	Op ServerActionOp `json:"op"`
	// ExistingHash identifies the hash being updated or deleted.
	ExistingHash string `json:"existingHash,omitempty"`
	// Token is the base64 secret granted the action; empty for deletes.
	Token  string `json:"token,omitempty"`
	Action Action `json:"action,omitempty"`
}

// ReconcileResult is the output of reconciliation: server actions to send,
// the patch to persist and the resulting hash→actions map of the scope.
// A nil ActionSet in HashMap means the hash was removed.
type ReconcileResult struct {
	Actions []ServerAction       `json:"actions"`
	Patch   VaultPatch           `json:"patch"`
	HashMap map[string]ActionSet `json:"hashMap"`
}
