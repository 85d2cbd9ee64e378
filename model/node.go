package model

import (
	"fmt"
	"io/fs"
)

// ModeMask covers the bits chmod(2) cares about: the nine permission
// bits plus setuid, setgid and sticky.
const ModeMask uint32 = 07777

type Kind uint8

const (
	Leaf Kind = iota
	Directory
)

// NodeData holds the probed metadata of a single entry. Mode, Uid and Gid
// are the entry's resolved values; the matching Set flag marks the value as
// an override, i.e. it differs from the immediate parent's resolved value
// and must be reproduced explicitly. For the root of a walk all three flags
// are set regardless of the values.
type NodeData struct {
	Kind Kind

	// Mode is the raw unix mode restricted to ModeMask.
	Mode uint32
	Uid  uint32
	Gid  uint32

	ModeSet bool
	UidSet  bool
	GidSet  bool

	// Children is sorted by raw name bytes. It is empty for leaves and
	// for directories whose listing failed; the latter record the listing
	// error in ListErr instead.
	Children []Node
	ListErr  error
}

// Node is one entry of the override tree. Name is the final path component,
// kept as the raw bytes the filesystem reported. A node with Err != nil
// could not be probed at all: it has no data and no children.
type Node struct {
	Name string
	Data *NodeData
	Err  error
}

// HasOverride reports whether any of mode, uid or gid is overridden.
func (n *Node) HasOverride() bool {
	return n.Data != nil && (n.Data.ModeSet || n.Data.UidSet || n.Data.GidSet)
}

// HasError reports whether the node carries a probe or listing error.
func (n *Node) HasError() bool {
	return n.Err != nil || (n.Data != nil && n.Data.ListErr != nil)
}

// ModeString renders a mode value the way ls-style tooling expects it,
// four octal digits.
func ModeString(mode uint32) string {
	return fmt.Sprintf("%04o", mode&ModeMask)
}

// ModeBits converts an fs.FileMode into the raw unix representation
// restricted to ModeMask. Archive headers hand out fs.FileMode values;
// the override model works on raw bits.
func ModeBits(mode fs.FileMode) uint32 {
	bits := uint32(mode.Perm())
	if mode&fs.ModeSetuid != 0 {
		bits |= 04000
	}
	if mode&fs.ModeSetgid != 0 {
		bits |= 02000
	}
	if mode&fs.ModeSticky != 0 {
		bits |= 01000
	}
	return bits
}
