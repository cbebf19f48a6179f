package parser

// Feature is the parsed tree of one .feature file.
type Feature struct {
	Annotations []string   `json:"annotations" yaml:"annotations"`
	Description string     `json:"description" yaml:"description"`
	Scenarios   []Scenario `json:"scenarios" yaml:"scenarios"`
	Background  *Scenario  `json:"background,omitempty" yaml:"background,omitempty"`
}

type Scenario struct {
	Annotations  []string `json:"annotations" yaml:"annotations"`
	Description  string   `json:"description" yaml:"description"`
	Steps        []Step   `json:"steps" yaml:"steps"`
	Index        int      `json:"index" yaml:"index"`
	IsBackground bool     `json:"is_background,omitempty" yaml:"is_background,omitempty"`
}

type Step struct {
	Keyword string `json:"keyword" yaml:"keyword"` // Given, When, Then, And
	Text    string `json:"text" yaml:"text"`
}

func (s Step) String() string {
	return s.Keyword + " " + s.Text
}
