package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mitre88/go-on-line/internal/domain/game"
	"github.com/mitre88/go-on-line/internal/domain/sgf"
)

const (
	humanPlayerName = "Human"
	aiPlayerName    = "AI"
)

func PrepareSgfFile(session game.Session) sgf.SGF {
	record := sgf.SGF{
		Root: &sgf.GameTree{
			Nodes: []sgf.Node{
				{
					Properties: map[string][]string{
						"FF": {"4"},
						"GM": {"1"},
						"SZ": {strconv.Itoa(game.BoardSize)},
						"PB": {humanPlayerName},
						"PW": {aiPlayerName},
						"DT": {session.CreatedAt.Format("2006-01-02")},
						"RE": {resultProperty(session.Result)},
						"KM": {"0.0"},
						"RU": {"Simplified"},
						"C":  {sgf.EscapeText("go-on-line game " + session.ID)},
					},
				},
			},
		},
	}
	AddTurnsToSgf(record.Root, session.Turns)
	return record
}

func resultProperty(result *game.Result) string {
	if result == nil {
		return ""
	}
	switch result.Winner {
	case game.Black.String():
		return "B+" + strconv.FormatFloat(result.Score.Black-result.Score.White, 'f', -1, 64)
	case game.White.String():
		return "W+" + strconv.FormatFloat(result.Score.White-result.Score.Black, 'f', -1, 64)
	default:
		return "0"
	}
}

func AddTurnsToSgf(tree *sgf.GameTree, turns []game.Turn) {
	for _, turn := range turns {
		key := "B"
		if turn.Color == game.White {
			key = "W"
		}
		value := ""
		if !turn.IsPass() {
			value = sgf.Point(turn.Position.Row, turn.Position.Col)
		}
		tree.Nodes = append(tree.Nodes, sgf.Node{
			Properties: map[string][]string{key: {value}},
		})
	}
}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool, len(node.Properties))
		for _, key := range sgf.RootProperties {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		rest := make([]string, 0, len(node.Properties))
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString(fmt.Sprintf("[%s]", v))
	}
}
