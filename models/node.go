// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// ReferenceGroup names the purpose of a reference attached to a content.
type ReferenceGroup string

const (
	// ReferenceKey marks an RSA-OAEP wrapped content key.
	ReferenceKey ReferenceGroup = "key"
	// ReferenceSignature marks an RSA-PSS signature over the content value.
	ReferenceSignature ReferenceGroup = "signature"
)

// TagKeyHash is the tag name under which key contents publish the hash of
// their public key.
const TagKeyHash = "key_hash"

// Reference is a wrapped key or signature attached to a content.
type Reference struct {
	// TargetHash is the hash of the public key the reference belongs to.
	TargetHash string         `json:"target"`
	Group      ReferenceGroup `json:"group"`
	// Extra carries "alg:base64(payload)".
	Extra string `json:"extra"`
}

// AvailableAction is one entry of a node's server-reported capabilities.
type AvailableAction struct {
	KeyHash string   `json:"keyHash"`
	Types   []string `json:"type"`
}

// NodeReference is a reference as reported by the server: the target is a
// key content identified through its "key_hash=" tags.
type NodeReference struct {
	Group      ReferenceGroup `json:"group"`
	Extra      string         `json:"extra"`
	TargetTags []string       `json:"targetTags"`
}

// TargetHashes returns the values of the target's key_hash tags.
func (r NodeReference) TargetHashes() []string {
	prefix := TagKeyHash + "="
	out := make([]string, 0, 1)
	for _, tag := range r.TargetTags {
		if v, ok := strings.CutPrefix(tag, prefix); ok {
			out = append(out, v)
		}
	}
	return out
}

// Node is the upstream record the core consumes: a cluster or content as
// returned by the server.
type Node struct {
	ID               string            `json:"id"`
	Tags             []string          `json:"tags"`
	References       []NodeReference   `json:"references"`
	AvailableActions []AvailableAction `json:"availableActions"`
}

// ServerReported indexes AvailableActions by key hash.
func (n Node) ServerReported() map[string]ActionSet {
	out := make(map[string]ActionSet, len(n.AvailableActions))
	for _, aa := range n.AvailableActions {
		set, ok := out[aa.KeyHash]
		if !ok {
			set = make(ActionSet, len(aa.Types))
			out[aa.KeyHash] = set
		}
		for _, t := range aa.Types {
			set.Add(ParseAction(t))
		}
	}
	return out
}

// ContentPayload carries the mutation fields produced for a content write.
// The exact transport schema is external.
type ContentPayload struct {
	// Value is the encrypted content.
	Value      []byte         `json:"value"`
	Nonce      string         `json:"nonce"`
	Tags       []string       `json:"tags"`
	References []Reference    `json:"references"`
	Actions    []ServerAction `json:"actions,omitempty"`
}
