package compile

import (
	"errors"
	"strings"
)

// ErrTemplateUnavailable reports that neither inline bytes nor a resolvable
// stored path yielded template content. The client-correctable fix is to
// upload the template file again.
var ErrTemplateUnavailable = errors.New("compile: тело шаблона недоступно, загрузите файл шаблона заново")

// MissingFieldsError aggregates every required binding whose resolved value
// came back empty. Compilation collects the full list before failing so the
// caller sees one complete message instead of the first gap.
type MissingFieldsError struct {
	// Labels holds the display labels in binding order, each listed once.
	Labels []string
}

func (e *MissingFieldsError) Error() string {
	return "compile: не заполнены обязательные поля: " + strings.Join(e.Labels, ", ")
}
