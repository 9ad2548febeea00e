package project

import (
	"bufio"
	"io"
	"strings"

	"github.com/trezcool/investigacion/core"
)

// CSVHeader is the fixed column order of the projects export.
var CSVHeader = []string{"Período", "Asignatura", "Docente", "Estudiantes", "Título", "Estado", "Link"}

// CSVRecord returns the export cells of p.
func CSVRecord(p Project) []string {
	return []string{
		p.Periodo,
		p.Asignatura,
		p.Docente,
		core.JoinList(p.Estudiantes),
		p.Titulo,
		p.Estado.Label(),
		p.Link,
	}
}

// WriteCSV writes the header and one line per project.
// Every field is quoted and embedded quotes are doubled, so commas, quotes and
// line breaks inside a value survive a round trip through any RFC 4180 reader.
func WriteCSV(w io.Writer, projects []Project) error {
	bw := bufio.NewWriter(w)
	if err := writeCSVLine(bw, CSVHeader); err != nil {
		return err
	}
	for _, p := range projects {
		if err := writeCSVLine(bw, CSVRecord(p)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCSVLine(w *bufio.Writer, cells []string) error {
	for i, cell := range cells {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(cell, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
