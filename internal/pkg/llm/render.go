package llm

import (
	"fmt"
	"strings"

	"github.com/promptviz/backend/internal/model"
)

// 节点类型在提示词里的人类可读说明
var nodeTypeDescriptions = map[string]string{
	"rectangle":     "Main Instructions/Actions",
	"diamond":       "Decision Points",
	"rounded":       "Context/Examples",
	"hexagon":       "Output Formats",
	"parallelogram": "Input/Output Operations",
	"cylinder":      "Data Storage",
	"circle":        "Events/Connectors",
}

// formatDiagramStructure 把画布结构渲染成给模型看的文本描述。
// 节点按类型分组，分组顺序取首次出现顺序，保证同一结构的输出稳定。
func formatDiagramStructure(structure *model.DiagramStructure) string {
	nodeLabels := make(map[string]string, len(structure.Nodes))
	for _, node := range structure.Nodes {
		label := node.Label
		if label == "" {
			label = node.ID
		}
		nodeLabels[node.ID] = label
	}

	lines := []string{"## Diagram Structure\n"}

	lines = append(lines, "### Nodes:\n")
	typeOrder := make([]string, 0)
	nodesByType := make(map[string][]model.DiagramNode)
	for _, node := range structure.Nodes {
		nodeType := node.Type
		if nodeType == "" {
			nodeType = "rectangle"
		}
		if _, seen := nodesByType[nodeType]; !seen {
			typeOrder = append(typeOrder, nodeType)
		}
		nodesByType[nodeType] = append(nodesByType[nodeType], node)
	}

	for _, nodeType := range typeOrder {
		desc, ok := nodeTypeDescriptions[nodeType]
		if !ok {
			desc = capitalize(nodeType)
		}
		lines = append(lines, fmt.Sprintf("\n**%s:**", desc))
		for _, node := range nodesByType[nodeType] {
			label := node.Label
			if label == "" {
				label = "No label"
			}
			lines = append(lines, fmt.Sprintf("- [%s] %s", node.ID, label))
		}
	}

	lines = append(lines, "\n### Flow/Connections:\n")
	for _, edge := range structure.Edges {
		sourceLabel := edge.Source
		if label, ok := nodeLabels[edge.Source]; ok {
			sourceLabel = label
		}
		targetLabel := edge.Target
		if label, ok := nodeLabels[edge.Target]; ok {
			targetLabel = label
		}

		if edge.Label != "" {
			lines = append(lines, fmt.Sprintf("- \"%s\" --[%s]--> \"%s\"", sourceLabel, edge.Label, targetLabel))
		} else {
			lines = append(lines, fmt.Sprintf("- \"%s\" --> \"%s\"", sourceLabel, targetLabel))
		}
	}

	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
