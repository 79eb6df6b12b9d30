package sgf

import "strings"

// GameTree is a sequence of nodes plus its variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node holds SGF properties such as B[ee] or C[...]. A property may carry
// several values, e.g. AB[aa][bb].
type Node struct {
	Properties map[string][]string
}

type SGF struct {
	Root *GameTree
}

// RootProperties is the order root properties are written in.
var RootProperties = []string{"FF", "GM", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "C", "B", "W"}

// EscapeText escapes ] and \ inside a property value.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "]", `\]`)
}

// Point encodes a zero based row/col pair as SGF letters, column first.
// Passes are written as an empty value instead.
func Point(row, col int) string {
	return string([]byte{byte('a' + col), byte('a' + row)})
}
