package sanity

// Block is one element of a Portable Text body: an ordered sequence of
// inline spans with a style tag, plus the mark definitions (links) the
// spans reference by key.
type Block struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key"`
	Style    string    `json:"style"`
	ListItem string    `json:"listItem"`
	Level    int       `json:"level"`
	Children []Span    `json:"children"`
	MarkDefs []MarkDef `json:"markDefs"`
}

// Span is an inline run of text carrying zero or more mark tags. A mark is
// either a decorator name ("strong", "em", "code") or the key of one of the
// parent block's MarkDefs.
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

// MarkDef is an annotation definition referenced by span marks; the only
// kind this site renders is a hyperlink.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href"`
}
