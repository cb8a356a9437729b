package domain

// Selection decides which part of a model is drawn and how it is split.
// Exactly one of the concrete types below is used per map.
type Selection interface {
	selection()
}

// WholeModel draws every reaction as a single map.
type WholeModel struct{}

// MapFile loads a previously saved SAMMI map instead of the model.
type MapFile struct {
	Path string
}

// FieldPartition draws one subgraph per unique value of a reaction or metabolite field.
type FieldPartition struct {
	Field string
}

// ReactionList draws only the listed reactions as a single map.
// An empty list draws the whole model.
type ReactionList struct {
	IDs []string
}

// SubgraphList draws one subgraph per entry.
type SubgraphList struct {
	Subgraphs []Subgraph
}

func (WholeModel) selection()     {}
func (MapFile) selection()        {}
func (FieldPartition) selection() {}
func (ReactionList) selection()   {}
func (SubgraphList) selection()   {}

// SelectionName is a short label used in logs and history.
func SelectionName(s Selection) string {
	switch s.(type) {
	case WholeModel, nil:
		return "model"
	case MapFile:
		return "map"
	case FieldPartition:
		return "field"
	case ReactionList:
		return "reactions"
	case SubgraphList:
		return "subgraphs"
	default:
		return "unknown"
	}
}
