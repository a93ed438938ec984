package model

// 前端画布上的图结构。反向生成提示词时整体序列化为 JSON 入库，
// 方便之后原样还原画布。

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type DiagramNode struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"` // rectangle, diamond, rounded, hexagon, parallelogram, cylinder, circle
	Label    string   `json:"label"`
	Position Position `json:"position"`
}

type DiagramEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

type DiagramStructure struct {
	Nodes []DiagramNode `json:"nodes"`
	Edges []DiagramEdge `json:"edges"`
}
