package render

import (
	"encoding/json"

	"github.com/matzehuels/tompkins/pkg/errors"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

// Document is the JSON export of a triangle and its highlighted entries.
// The triangle's fields sit at the top level, so a Document decodes into the
// same shape the server's /triangle endpoint returns.
type Document struct {
	K           int                 `json:"k"`
	C           uint64              `json:"c"`
	Rows        [][]uint64          `json:"rows"`
	Max         uint64              `json:"max"`
	Selection   string              `json:"selection,omitempty"`
	Highlighted []triangle.Position `json:"highlighted"`
}

// RenderJSON exports t with the positions sel marks.
func RenderJSON(t triangle.Triangle, sel Selection) ([]byte, error) {
	if t.Empty() {
		return nil, errors.New(errors.ErrCodeRenderFailed, "cannot export an empty triangle")
	}
	doc := Document{
		K:           t.K(),
		C:           t.Seed(),
		Rows:        t.Rows(),
		Max:         t.Max(),
		Highlighted: Marked(t, sel),
	}
	if doc.Highlighted == nil {
		doc.Highlighted = []triangle.Position{}
	}
	if sel != nil {
		doc.Selection = sel.String()
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode JSON")
	}
	return append(data, '\n'), nil
}
